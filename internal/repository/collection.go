package repository

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/stemsi/exstem-scheduler/internal/model"
)

var (
	// ErrNotFound is returned when no record exists for an id, whatever its active flag.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateIdentifier is returned when inserting an id that already exists.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// Entity is satisfied by pointers to types embedding model.Record.
type Entity[T any] interface {
	*T
	Meta() *model.Record
}

// Collection is a keyed set of records of one type.
//
// Every method is atomic with respect to a single record. Get and List do
// not filter on the active flag; callers decide which view they need.
type Collection[T any] interface {
	// Insert stores entity under its own id. Identifiers are assigned by the caller.
	Insert(ctx context.Context, entity T) error
	// Get returns the record stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)
	// List yields every record in insertion order. The sequence is lazy and
	// may be ranged over more than once.
	List(ctx context.Context) iter.Seq2[T, error]
	// Deactivate clears the active flag and stamps the modification time.
	Deactivate(ctx context.Context, id string, at time.Time) error
	// Replace overwrites the mutable fields of the record stored under id.
	// The id, creation time and active flag of the stored record are kept.
	Replace(ctx context.Context, id string, entity T) error
}

// Store groups the three scheduling collections.
type Store struct {
	Courses  Collection[model.Course]
	Rooms    Collection[model.Room]
	Sections Collection[model.ClassSection]
}

// NewMemoryStore returns a Store backed by in-process collections.
func NewMemoryStore() *Store {
	return &Store{
		Courses:  NewMemoryCollection[model.Course](),
		Rooms:    NewMemoryCollection[model.Room](),
		Sections: NewMemoryCollection[model.ClassSection](),
	}
}
