package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
)

// Resolver checks that the course and room referenced by a section exist
// and are active. It never writes.
type Resolver struct {
	courses repository.Collection[model.Course]
	rooms   repository.Collection[model.Room]
}

// NewResolver creates a Resolver over the given collections.
func NewResolver(courses repository.Collection[model.Course], rooms repository.Collection[model.Room]) *Resolver {
	return &Resolver{courses: courses, rooms: rooms}
}

// Resolve returns the active course and room, failing fast on the course first.
func (r *Resolver) Resolve(ctx context.Context, courseID, roomID string) (model.Course, model.Room, error) {
	course, err := activeOnly(ctx, r.courses, courseID, ErrCourseNotFound)
	if err != nil {
		return model.Course{}, model.Room{}, err
	}
	room, err := activeOnly(ctx, r.rooms, roomID, ErrRoomNotFound)
	if err != nil {
		return model.Course{}, model.Room{}, err
	}
	return course, room, nil
}

// activeOnly fetches id and maps both "absent" and "inactive" onto missing.
func activeOnly[T any, P repository.Entity[T]](ctx context.Context, c repository.Collection[T], id string, missing error) (T, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, repository.ErrNotFound) {
			return zero, missing
		}
		return zero, fmt.Errorf("lookup %s: %w", id, err)
	}
	if !P(&item).Meta().Active {
		var zero T
		return zero, missing
	}
	return item, nil
}
