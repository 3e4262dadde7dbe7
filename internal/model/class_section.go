package model

// DefaultSectionCapacity is used when a section request omits its capacity.
const DefaultSectionCapacity = 30

// ClassSectionDraft carries the mutable fields of a section (turma).
type ClassSectionDraft struct {
	Term      Term        `json:"term"`
	CourseID  string      `json:"course_id"`
	Professor string      `json:"professor"`
	RoomID    string      `json:"room_id"`
	Weekday   Weekday     `json:"weekday"`
	Schedule  *TimeWindow `json:"schedule,omitempty"`
	Capacity  int         `json:"capacity"`
}

// ClassSection is one scheduled offering of a course in a term.
type ClassSection struct {
	Record
	ClassSectionDraft
}

// EnrichedClassSection is a section with read-only course and room summaries.
// It is never persisted.
type EnrichedClassSection struct {
	ClassSection
	Course *CourseSummary `json:"course"`
	Room   *RoomSummary   `json:"room"`
}

// RoomAvailability reports whether a room is free on a weekday of a term.
type RoomAvailability struct {
	RoomID              string         `json:"room_id"`
	Term                Term           `json:"term"`
	Weekday             Weekday        `json:"weekday"`
	Available           bool           `json:"available"`
	ConflictingSections []ClassSection `json:"conflicting_sections"`
}
