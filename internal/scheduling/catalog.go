package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/stemsi/exstem-scheduler/internal/model"
)

// ─── Courses ───────────────────────────────────────────────────────────────

// CreateCourse stores a new active course under id. Active course names
// are unique per term, compared case-insensitively.
func (s *Scheduler) CreateCourse(ctx context.Context, id string, draft model.CourseDraft) (*model.Course, error) {
	var out *model.Course
	err := s.write(ctx, func() error {
		if err := s.checkCourseName(ctx, draft, ""); err != nil {
			return err
		}
		course := model.Course{Record: model.NewRecord(id, s.now()), CourseDraft: draft}
		if err := s.store.Courses.Insert(ctx, course); err != nil {
			return err
		}
		out = &course
		return nil
	})
	return out, err
}

// UpdateCourse replaces the mutable fields of an active course.
func (s *Scheduler) UpdateCourse(ctx context.Context, id string, draft model.CourseDraft) (*model.Course, error) {
	var out *model.Course
	err := s.write(ctx, func() error {
		current, err := activeOnly(ctx, s.store.Courses, id, ErrNotFound)
		if err != nil {
			return err
		}
		if err := s.checkCourseName(ctx, draft, id); err != nil {
			return err
		}
		current.CourseDraft = draft
		current.UpdatedAt = s.now()
		if err := s.store.Courses.Replace(ctx, id, current); err != nil {
			return err
		}
		out = &current
		return nil
	})
	return out, err
}

// DeactivateCourse soft-deletes an active course that no active section references.
func (s *Scheduler) DeactivateCourse(ctx context.Context, id string) error {
	return s.write(ctx, func() error {
		if _, err := activeOnly(ctx, s.store.Courses, id, ErrNotFound); err != nil {
			return err
		}
		if err := s.guardDependents(ctx, func(sec model.ClassSection) bool { return sec.CourseID == id }); err != nil {
			return err
		}
		return s.store.Courses.Deactivate(ctx, id, s.now())
	})
}

// GetCourse returns an active course.
func (s *Scheduler) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := activeOnly(ctx, s.store.Courses, id, ErrNotFound)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Scheduler) checkCourseName(ctx context.Context, draft model.CourseDraft, excludeID string) error {
	name := strings.ToLower(draft.Name)
	for c, err := range s.store.Courses.List(ctx) {
		if err != nil {
			return fmt.Errorf("scan courses: %w", err)
		}
		if c.Active && c.ID != excludeID && c.Term == draft.Term && strings.ToLower(c.Name) == name {
			return ErrDuplicateNameInTerm
		}
	}
	return nil
}

// ─── Rooms ─────────────────────────────────────────────────────────────────

// CreateRoom stores a new active room under id. Active room numbers are
// unique, compared case-insensitively.
func (s *Scheduler) CreateRoom(ctx context.Context, id string, draft model.RoomDraft) (*model.Room, error) {
	var out *model.Room
	err := s.write(ctx, func() error {
		if err := s.checkRoomNumber(ctx, draft, ""); err != nil {
			return err
		}
		room := model.Room{Record: model.NewRecord(id, s.now()), RoomDraft: draft}
		if err := s.store.Rooms.Insert(ctx, room); err != nil {
			return err
		}
		out = &room
		return nil
	})
	return out, err
}

// UpdateRoom replaces the mutable fields of an active room.
func (s *Scheduler) UpdateRoom(ctx context.Context, id string, draft model.RoomDraft) (*model.Room, error) {
	var out *model.Room
	err := s.write(ctx, func() error {
		current, err := activeOnly(ctx, s.store.Rooms, id, ErrNotFound)
		if err != nil {
			return err
		}
		if err := s.checkRoomNumber(ctx, draft, id); err != nil {
			return err
		}
		current.RoomDraft = draft
		current.UpdatedAt = s.now()
		if err := s.store.Rooms.Replace(ctx, id, current); err != nil {
			return err
		}
		out = &current
		return nil
	})
	return out, err
}

// DeactivateRoom soft-deletes an active room that no active section occupies.
func (s *Scheduler) DeactivateRoom(ctx context.Context, id string) error {
	return s.write(ctx, func() error {
		if _, err := activeOnly(ctx, s.store.Rooms, id, ErrNotFound); err != nil {
			return err
		}
		if err := s.guardDependents(ctx, func(sec model.ClassSection) bool { return sec.RoomID == id }); err != nil {
			return err
		}
		return s.store.Rooms.Deactivate(ctx, id, s.now())
	})
}

// GetRoom returns an active room.
func (s *Scheduler) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	room, err := activeOnly(ctx, s.store.Rooms, id, ErrNotFound)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Scheduler) checkRoomNumber(ctx context.Context, draft model.RoomDraft, excludeID string) error {
	number := strings.ToLower(draft.Number)
	for r, err := range s.store.Rooms.List(ctx) {
		if err != nil {
			return fmt.Errorf("scan rooms: %w", err)
		}
		if r.Active && r.ID != excludeID && strings.ToLower(r.Number) == number {
			return ErrDuplicateRoomNumber
		}
	}
	return nil
}

// guardDependents fails with a *DependentsError when any active section matches ref.
func (s *Scheduler) guardDependents(ctx context.Context, ref func(model.ClassSection) bool) error {
	n, err := s.detector.countActive(ctx, ref)
	if err != nil {
		return err
	}
	if n > 0 {
		return &DependentsError{Count: n}
	}
	return nil
}
