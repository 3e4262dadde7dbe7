package scheduling

import (
	"errors"
	"fmt"

	"github.com/stemsi/exstem-scheduler/internal/repository"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrNotFound            = repository.ErrNotFound
	ErrDuplicateIdentifier = repository.ErrDuplicateIdentifier

	ErrDuplicateNameInTerm = errors.New("an active course with this name already exists in the term")
	ErrDuplicateRoomNumber = errors.New("an active room with this number already exists")

	ErrCourseNotFound = errors.New("course not found or inactive")
	ErrRoomNotFound   = errors.New("room not found or inactive")

	ErrCourseAlreadyScheduled = errors.New("course already has an active section in the term")
	ErrProfessorConflict      = errors.New("professor already teaches a section on this weekday in the term")
	ErrRoomConflict           = errors.New("room already hosts a section on this weekday in the term")

	ErrHasActiveDependents = errors.New("record is referenced by active sections")
)

// ConflictError reports which existing section blocked a schedule change.
type ConflictError struct {
	Kind      error
	SectionID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v (section %s)", e.Kind, e.SectionID)
}

func (e *ConflictError) Unwrap() error {
	return e.Kind
}

// DependentsError reports how many active sections block a deactivation.
type DependentsError struct {
	Count int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%v: %d active section(s)", ErrHasActiveDependents, e.Count)
}

func (e *DependentsError) Unwrap() error {
	return ErrHasActiveDependents
}
