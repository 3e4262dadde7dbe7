package model

// RoomKind classifies a physical room.
type RoomKind string

const (
	RoomKindClassroom  RoomKind = "classroom"
	RoomKindLaboratory RoomKind = "laboratory"
	RoomKindAuditorium RoomKind = "auditorium"
	RoomKindLibrary    RoomKind = "library"
)

// Valid reports whether k is a known room kind. The empty kind is valid.
func (k RoomKind) Valid() bool {
	switch k {
	case "", RoomKindClassroom, RoomKindLaboratory, RoomKindAuditorium, RoomKindLibrary:
		return true
	}
	return false
}

// RoomDraft carries the mutable fields of a room (sala).
type RoomDraft struct {
	Number      string   `json:"number"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Name        string   `json:"name,omitempty"`
	Kind        RoomKind `json:"kind,omitempty"`
}

// Room is a physical space with fixed seating capacity.
type Room struct {
	Record
	RoomDraft
}

// RoomSummary is the denormalized view of a room attached to a section.
type RoomSummary struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
}

// Summary projects the room into a RoomSummary.
func (r Room) Summary() *RoomSummary {
	return &RoomSummary{
		ID:          r.ID,
		Number:      r.Number,
		Description: r.Description,
		Capacity:    r.Capacity,
	}
}
