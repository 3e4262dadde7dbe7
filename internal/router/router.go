package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/exstem-scheduler/internal/config"
	"github.com/stemsi/exstem-scheduler/internal/handler"
	"github.com/stemsi/exstem-scheduler/internal/middleware"
	"github.com/stemsi/exstem-scheduler/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course   *handler.CourseHandler
	Room     *handler.RoomHandler
	Section  *handler.SectionHandler
	Schedule *handler.ScheduleWSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Compress())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "store": cfg.StoreDriver})
	})

	api := router.Group("/api/v1")

	// ─── 1. Courses (disciplinas) ──────────────────────────────────────
	courses := api.Group("/courses")
	{
		courses.GET("", handlers.Course.GetAll)
		courses.GET("/programs", handlers.Course.GetPrograms)
		courses.GET("/:id", handlers.Course.GetByID)
		courses.POST("", handlers.Course.Create)
		courses.PUT("/:id", handlers.Course.Update)
		courses.DELETE("/:id", handlers.Course.Delete)
	}

	// ─── 2. Rooms (salas) ──────────────────────────────────────────────
	rooms := api.Group("/rooms")
	{
		rooms.GET("", handlers.Room.GetAll)
		rooms.GET("/:id", handlers.Room.GetByID)
		rooms.GET("/:id/availability", handlers.Room.GetAvailability)
		rooms.POST("", handlers.Room.Create)
		rooms.PUT("/:id", handlers.Room.Update)
		rooms.DELETE("/:id", handlers.Room.Delete)
	}

	// ─── 3. Class sections (turmas) ────────────────────────────────────
	sections := api.Group("/sections")
	{
		sections.GET("", handlers.Section.GetAll)
		sections.GET("/:id", handlers.Section.GetByID)
		sections.POST("", handlers.Section.Create)
		sections.PUT("/:id", handlers.Section.Update)
		sections.DELETE("/:id", handlers.Section.Delete)
	}

	// ─── 4. WebSocket ──────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/schedule", handlers.Schedule.Stream)
	}

	return router
}
