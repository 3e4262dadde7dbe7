package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/config"
	"github.com/stemsi/exstem-scheduler/internal/database"
	"github.com/stemsi/exstem-scheduler/internal/events"
	"github.com/stemsi/exstem-scheduler/internal/handler"
	"github.com/stemsi/exstem-scheduler/internal/lock"
	"github.com/stemsi/exstem-scheduler/internal/logger"
	"github.com/stemsi/exstem-scheduler/internal/repository"
	"github.com/stemsi/exstem-scheduler/internal/router"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
	"github.com/stemsi/exstem-scheduler/internal/service"
	"github.com/stemsi/exstem-scheduler/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ExStem Scheduler")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Initialize Store ──────────────────────────────────────────────
	var store *repository.Store
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		store = repository.NewPostgresStore(pool)
	case config.StoreMemory:
		store = repository.NewMemoryStore()
	default:
		log.Fatal().Str("store", cfg.StoreDriver).Msg("Unknown STORE_DRIVER")
	}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	var (
		locker lock.Locker
		bus    events.Bus
	)
	if rdb != nil {
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, log)
		bus = events.NewRedisBus(rdb, log)
	} else {
		if cfg.StoreDriver == config.StorePostgres {
			log.Warn().Msg("REDIS_URL is empty: writes are only serialized within this instance")
		}
		locker = lock.NewMutexLocker()
		bus = events.NewHub()
	}

	// ─── Initialize Core & Services ────────────────────────────────────
	scheduler := scheduling.New(store, scheduling.WithLocker(locker))

	courseService := service.NewCourseService(scheduler, store, log)
	roomService := service.NewRoomService(scheduler, store, log)
	sectionService := service.NewSectionService(scheduler, store, bus, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Course:   handler.NewCourseHandler(courseService, log),
		Room:     handler.NewRoomHandler(roomService, log),
		Section:  handler.NewSectionHandler(sectionService, cfg.DefaultSectionCapacity, log),
		Schedule: handler.NewScheduleWSHandler(bus, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Ends the WebSocket streams and their subscriptions.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
