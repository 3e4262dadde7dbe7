package model

import "time"

// Record holds the identity and soft-delete state shared by courses, rooms and sections.
type Record struct {
	ID        string    `json:"id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta exposes the record header of any entity embedding Record.
func (r *Record) Meta() *Record {
	return r
}

// NewRecord returns an active record stamped with the given time.
func NewRecord(id string, at time.Time) Record {
	return Record{ID: id, Active: true, CreatedAt: at, UpdatedAt: at}
}
