package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
)

// RoomFilter narrows ListRooms. Zero fields match everything.
type RoomFilter struct {
	Number      string
	MinCapacity int
	MaxCapacity int
}

// RoomService handles room (sala) use cases.
type RoomService struct {
	scheduler *scheduling.Scheduler
	rooms     repository.Collection[model.Room]
	log       zerolog.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(scheduler *scheduling.Scheduler, store *repository.Store, log zerolog.Logger) *RoomService {
	return &RoomService{
		scheduler: scheduler,
		rooms:     store.Rooms,
		log:       log.With().Str("component", "room_service").Logger(),
	}
}

// Create registers a room under a fresh identifier.
func (s *RoomService) Create(ctx context.Context, draft model.RoomDraft) (*model.Room, error) {
	id := uuid.NewString()
	room, err := s.scheduler.CreateRoom(ctx, id, draft)
	logOutcome(s.log, err, "Room created", id)
	return room, err
}

func (s *RoomService) Update(ctx context.Context, id string, draft model.RoomDraft) (*model.Room, error) {
	room, err := s.scheduler.UpdateRoom(ctx, id, draft)
	logOutcome(s.log, err, "Room updated", id)
	return room, err
}

func (s *RoomService) Deactivate(ctx context.Context, id string) error {
	err := s.scheduler.DeactivateRoom(ctx, id)
	logOutcome(s.log, err, "Room deactivated", id)
	return err
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	return s.scheduler.GetRoom(ctx, id)
}

// List returns active rooms matching f, ordered by room number.
func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]model.Room, error) {
	number := strings.ToLower(f.Number)

	rooms := []model.Room{}
	for r, err := range s.rooms.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list rooms: %w", err)
		}
		if !r.Active {
			continue
		}
		if number != "" && !strings.Contains(strings.ToLower(r.Number), number) {
			continue
		}
		if f.MinCapacity > 0 && r.Capacity < f.MinCapacity {
			continue
		}
		if f.MaxCapacity > 0 && r.Capacity > f.MaxCapacity {
			continue
		}
		rooms = append(rooms, r)
	}

	slices.SortStableFunc(rooms, func(a, b model.Room) int {
		return strings.Compare(a.Number, b.Number)
	})
	return rooms, nil
}

// Availability reports which active sections occupy a room on a weekday of a term.
func (s *RoomService) Availability(ctx context.Context, roomID string, term model.Term, weekday model.Weekday) (*model.RoomAvailability, error) {
	return s.scheduler.CheckRoomAvailability(ctx, roomID, term, weekday)
}
