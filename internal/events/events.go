package events

import (
	"context"
	"time"

	"github.com/stemsi/exstem-scheduler/internal/model"
)

// Type names a schedule change.
type Type string

const (
	SectionCreated     Type = "section.created"
	SectionUpdated     Type = "section.updated"
	SectionDeactivated Type = "section.deactivated"
)

// Event is a schedule change within one term.
type Event struct {
	Type       Type                        `json:"type"`
	Term       model.Term                  `json:"term"`
	SectionID  string                      `json:"section_id"`
	Section    *model.EnrichedClassSection `json:"section,omitempty"`
	OccurredAt time.Time                   `json:"occurred_at"`
}

// Publisher fans an event out to the subscribers of its term.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber delivers the events of a term until cancel is called or ctx ends.
type Subscriber interface {
	Subscribe(ctx context.Context, term model.Term) (ch <-chan Event, cancel func(), err error)
}

// Bus is both ends of the event stream.
type Bus interface {
	Publisher
	Subscriber
}
