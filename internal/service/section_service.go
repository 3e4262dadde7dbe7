package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/events"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
)

// SectionFilter narrows ListSections. Zero fields match everything.
type SectionFilter struct {
	Term      model.Term
	CourseID  string
	Professor string
	RoomID    string
	Weekday   model.Weekday
}

// SectionService handles class section (turma) use cases and announces
// every successful change on the event bus.
type SectionService struct {
	scheduler *scheduling.Scheduler
	store     *repository.Store
	publisher events.Publisher
	log       zerolog.Logger
}

// NewSectionService creates a new SectionService.
func NewSectionService(scheduler *scheduling.Scheduler, store *repository.Store, publisher events.Publisher, log zerolog.Logger) *SectionService {
	return &SectionService{
		scheduler: scheduler,
		store:     store,
		publisher: publisher,
		log:       log.With().Str("component", "section_service").Logger(),
	}
}

// Create schedules a new section under a fresh identifier.
func (s *SectionService) Create(ctx context.Context, draft model.ClassSectionDraft) (*model.EnrichedClassSection, error) {
	id := uuid.NewString()
	section, err := s.scheduler.CreateSection(ctx, id, draft)
	logOutcome(s.log, err, "Section created", id)
	if err == nil {
		s.publish(ctx, events.SectionCreated, draft.Term, id, section)
	}
	return section, err
}

func (s *SectionService) Update(ctx context.Context, id string, draft model.ClassSectionDraft) (*model.EnrichedClassSection, error) {
	section, previous, err := s.scheduler.UpdateSection(ctx, id, draft)
	logOutcome(s.log, err, "Section updated", id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.SectionUpdated, draft.Term, id, section)
	// A section moved to another term leaves the old term's stream too.
	if previous.Term != draft.Term {
		s.publish(ctx, events.SectionUpdated, previous.Term, id, section)
	}
	return section, nil
}

func (s *SectionService) Deactivate(ctx context.Context, id string) error {
	section, err := s.scheduler.DeactivateSection(ctx, id)
	logOutcome(s.log, err, "Section deactivated", id)
	if err != nil {
		return err
	}

	s.publish(ctx, events.SectionDeactivated, section.Term, id, nil)
	return nil
}

func (s *SectionService) GetByID(ctx context.Context, id string) (*model.EnrichedClassSection, error) {
	return s.scheduler.GetSection(ctx, id)
}

// List returns active sections matching f, enriched with compact course and
// room summaries and ordered by weekday, then room number.
func (s *SectionService) List(ctx context.Context, f SectionFilter) ([]*model.EnrichedClassSection, error) {
	courses, err := indexByID(ctx, s.store.Courses, func(c model.Course) string { return c.ID })
	if err != nil {
		return nil, err
	}
	rooms, err := indexByID(ctx, s.store.Rooms, func(r model.Room) string { return r.ID })
	if err != nil {
		return nil, err
	}

	professor := strings.ToLower(f.Professor)
	out := []*model.EnrichedClassSection{}
	for sec, err := range s.store.Sections.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list sections: %w", err)
		}
		switch {
		case !sec.Active,
			f.Term != "" && sec.Term != f.Term,
			f.CourseID != "" && sec.CourseID != f.CourseID,
			f.RoomID != "" && sec.RoomID != f.RoomID,
			f.Weekday != "" && sec.Weekday != f.Weekday,
			professor != "" && !strings.Contains(strings.ToLower(sec.Professor), professor):
			continue
		}
		out = append(out, scheduling.Enrich(sec, courses[sec.CourseID], rooms[sec.RoomID], false))
	}

	slices.SortStableFunc(out, func(a, b *model.EnrichedClassSection) int {
		if c := cmp.Compare(weekdayRank(a.Weekday), weekdayRank(b.Weekday)); c != 0 {
			return c
		}
		return strings.Compare(roomNumber(a), roomNumber(b))
	})
	return out, nil
}

func (s *SectionService) publish(ctx context.Context, typ events.Type, term model.Term, id string, section *model.EnrichedClassSection) {
	e := events.Event{Type: typ, Term: term, SectionID: id, Section: section, OccurredAt: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Error().Err(err).Str("id", id).Str("event", string(typ)).Msg("Failed to publish schedule event")
	}
}

func indexByID[T any](ctx context.Context, c repository.Collection[T], key func(T) string) (map[string]*T, error) {
	index := make(map[string]*T)
	for item, err := range c.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		index[key(item)] = &item
	}
	return index, nil
}

// weekdayRank puts unknown weekdays last.
func weekdayRank(w model.Weekday) int {
	if o := w.Order(); o > 0 {
		return o
	}
	return len(model.Weekdays) + 1
}

func roomNumber(s *model.EnrichedClassSection) string {
	if s.Room == nil {
		return ""
	}
	return s.Room.Number
}
