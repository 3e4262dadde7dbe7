// Package scheduling guards the integrity of course, room and section
// allocations. Every write runs under a single write scope and either
// applies in full or leaves the store untouched.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stemsi/exstem-scheduler/internal/lock"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
)

// writeScope is the lock scope shared by every mutation. Course and room
// deactivation inspect sections of every term, so per-term scopes would
// not be enough.
const writeScope = "schedule"

// Scheduler orchestrates course, room and section lifecycles.
type Scheduler struct {
	store    *repository.Store
	resolver *Resolver
	detector *Detector
	locker   lock.Locker
	now      func() time.Time
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithLocker replaces the default in-process locker.
func WithLocker(l lock.Locker) Option {
	return func(s *Scheduler) { s.locker = l }
}

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a Scheduler over store.
func New(store *repository.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		resolver: NewResolver(store.Courses, store.Rooms),
		detector: NewDetector(store.Sections),
		locker:   lock.NewMutexLocker(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) write(ctx context.Context, fn func() error) error {
	release, err := s.locker.Acquire(ctx, writeScope)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// ─── Sections ──────────────────────────────────────────────────────────────

// CreateSection resolves the references, checks for conflicts and stores a
// new active section under id.
func (s *Scheduler) CreateSection(ctx context.Context, id string, draft model.ClassSectionDraft) (*model.EnrichedClassSection, error) {
	var out *model.EnrichedClassSection
	err := s.write(ctx, func() error {
		course, room, err := s.resolver.Resolve(ctx, draft.CourseID, draft.RoomID)
		if err != nil {
			return err
		}
		if err := s.detector.Check(ctx, draft, ""); err != nil {
			return err
		}

		section := model.ClassSection{Record: model.NewRecord(id, s.now()), ClassSectionDraft: draft}
		if err := s.store.Sections.Insert(ctx, section); err != nil {
			return err
		}
		out = Enrich(section, &course, &room, false)
		return nil
	})
	return out, err
}

// UpdateSection replaces the mutable fields of an active section after
// re-running both checks with the section itself excluded. It also returns
// the section as it was before the update.
func (s *Scheduler) UpdateSection(ctx context.Context, id string, draft model.ClassSectionDraft) (*model.EnrichedClassSection, model.ClassSection, error) {
	var (
		out      *model.EnrichedClassSection
		previous model.ClassSection
	)
	err := s.write(ctx, func() error {
		current, err := activeOnly(ctx, s.store.Sections, id, ErrNotFound)
		if err != nil {
			return err
		}
		course, room, err := s.resolver.Resolve(ctx, draft.CourseID, draft.RoomID)
		if err != nil {
			return err
		}
		if err := s.detector.Check(ctx, draft, id); err != nil {
			return err
		}

		previous = current
		current.ClassSectionDraft = draft
		current.UpdatedAt = s.now()
		if err := s.store.Sections.Replace(ctx, id, current); err != nil {
			return err
		}
		out = Enrich(current, &course, &room, false)
		return nil
	})
	if err != nil {
		return nil, model.ClassSection{}, err
	}
	return out, previous, nil
}

// DeactivateSection soft-deletes an active section and returns it as it was
// before deactivation. Nothing depends on a section, so no dependency check
// runs. There is no way back to active.
func (s *Scheduler) DeactivateSection(ctx context.Context, id string) (model.ClassSection, error) {
	var section model.ClassSection
	err := s.write(ctx, func() error {
		current, err := activeOnly(ctx, s.store.Sections, id, ErrNotFound)
		if err != nil {
			return err
		}
		if err := s.store.Sections.Deactivate(ctx, id, s.now()); err != nil {
			return err
		}
		section = current
		return nil
	})
	return section, err
}

// GetSection returns an active section with detailed course and room summaries.
func (s *Scheduler) GetSection(ctx context.Context, id string) (*model.EnrichedClassSection, error) {
	section, err := activeOnly(ctx, s.store.Sections, id, ErrNotFound)
	if err != nil {
		return nil, err
	}
	course, room, err := s.references(ctx, section)
	if err != nil {
		return nil, err
	}
	return Enrich(section, course, room, true), nil
}

// references loads the course and room of a section regardless of their
// active flag. A dangling id yields nil.
func (s *Scheduler) references(ctx context.Context, section model.ClassSection) (*model.Course, *model.Room, error) {
	var (
		course *model.Course
		room   *model.Room
	)
	if c, err := s.store.Courses.Get(ctx, section.CourseID); err == nil {
		course = &c
	} else if !errors.Is(err, ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup course: %w", err)
	}
	if r, err := s.store.Rooms.Get(ctx, section.RoomID); err == nil {
		room = &r
	} else if !errors.Is(err, ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup room: %w", err)
	}
	return course, room, nil
}

// CheckRoomAvailability lists the active sections occupying roomID on
// weekday in term. The room is available when there are none. An unknown
// or inactive room yields ErrNotFound.
func (s *Scheduler) CheckRoomAvailability(ctx context.Context, roomID string, term model.Term, weekday model.Weekday) (*model.RoomAvailability, error) {
	if _, err := activeOnly(ctx, s.store.Rooms, roomID, ErrNotFound); err != nil {
		return nil, err
	}
	occupants, err := s.detector.RoomOccupants(ctx, roomID, term, weekday)
	if err != nil {
		return nil, err
	}
	return &model.RoomAvailability{
		RoomID:              roomID,
		Term:                term,
		Weekday:             weekday,
		Available:           len(occupants) == 0,
		ConflictingSections: occupants,
	}, nil
}

// Enrich attaches read-only course and room summaries to a section.
func Enrich(section model.ClassSection, course *model.Course, room *model.Room, detailed bool) *model.EnrichedClassSection {
	out := &model.EnrichedClassSection{ClassSection: section}
	if course != nil {
		out.Course = course.Summary(detailed)
	}
	if room != nil {
		out.Room = room.Summary()
	}
	return out
}
