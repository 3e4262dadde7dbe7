package model

import "strings"

// ─── Courses ─────────────────────────────────────────────────────────

// CourseRequest is the body of POST and PUT /api/v1/courses.
type CourseRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Program     string `json:"program" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	CreditHours int    `json:"credit_hours" binding:"required,gt=0"`
	Term        string `json:"term" binding:"required,term"`
}

func (r CourseRequest) Draft() CourseDraft {
	return CourseDraft{
		Name:        strings.TrimSpace(r.Name),
		Program:     strings.TrimSpace(r.Program),
		Description: r.Description,
		CreditHours: r.CreditHours,
		Term:        Term(r.Term),
	}
}

// CourseListQuery filters GET /api/v1/courses.
type CourseListQuery struct {
	Program string `form:"program" binding:"omitempty,max=100"`
	Term    string `form:"term" binding:"omitempty,term"`
}

// ─── Rooms ───────────────────────────────────────────────────────────

// RoomRequest is the body of POST and PUT /api/v1/rooms.
type RoomRequest struct {
	Number      string `json:"number" binding:"required,min=2,max=20"`
	Description string `json:"description" binding:"required,max=200"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Name        string `json:"name" binding:"omitempty,min=2,max=100"`
	Kind        string `json:"kind" binding:"omitempty,room_kind"`
}

func (r RoomRequest) Draft() RoomDraft {
	return RoomDraft{
		Number:      strings.TrimSpace(r.Number),
		Description: r.Description,
		Capacity:    r.Capacity,
		Name:        r.Name,
		Kind:        RoomKind(r.Kind),
	}
}

// RoomListQuery filters GET /api/v1/rooms.
type RoomListQuery struct {
	Number      string `form:"number" binding:"omitempty,max=20"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,gt=0"`
	MaxCapacity int    `form:"max_capacity" binding:"omitempty,gt=0"`
}

// AvailabilityQuery is the query of GET /api/v1/rooms/:id/availability.
type AvailabilityQuery struct {
	Term    string `form:"term" binding:"required,term"`
	Weekday string `form:"weekday" binding:"required,weekday"`
}

// ─── Class sections ──────────────────────────────────────────────────

// SectionRequest is the body of POST and PUT /api/v1/sections. The meeting
// time is given either as schedule ("19:00-22:30") or as schedule_start
// and schedule_end.
type SectionRequest struct {
	Term          string `json:"term" binding:"required,term"`
	CourseID      string `json:"course_id" binding:"required"`
	Professor     string `json:"professor" binding:"required,min=2,max=100"`
	RoomID        string `json:"room_id" binding:"required"`
	Weekday       string `json:"weekday" binding:"required,weekday"`
	Schedule      string `json:"schedule" binding:"required_without=ScheduleStart,omitempty,hhmm_range"`
	ScheduleStart string `json:"schedule_start" binding:"required_without=Schedule,omitempty,hhmm"`
	ScheduleEnd   string `json:"schedule_end" binding:"required_with=ScheduleStart,omitempty,hhmm"`
	Capacity      int    `json:"capacity" binding:"omitempty,gt=0"`
}

// Draft converts the request into a section draft. defaultCapacity applies
// when capacity is omitted.
func (r SectionRequest) Draft(defaultCapacity int) (ClassSectionDraft, error) {
	var (
		window TimeWindow
		err    error
	)
	if r.Schedule != "" {
		window, err = ParseTimeWindow(r.Schedule)
	} else {
		window, err = NewTimeWindow(r.ScheduleStart, r.ScheduleEnd)
	}
	if err != nil {
		return ClassSectionDraft{}, err
	}

	capacity := r.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}
	if capacity <= 0 {
		capacity = DefaultSectionCapacity
	}

	return ClassSectionDraft{
		Term:      Term(r.Term),
		CourseID:  r.CourseID,
		Professor: strings.TrimSpace(r.Professor),
		RoomID:    r.RoomID,
		Weekday:   Weekday(r.Weekday),
		Schedule:  &window,
		Capacity:  capacity,
	}, nil
}

// SectionListQuery filters GET /api/v1/sections.
type SectionListQuery struct {
	Term      string `form:"term" binding:"omitempty,term"`
	CourseID  string `form:"course_id"`
	Professor string `form:"professor" binding:"omitempty,max=100"`
	RoomID    string `form:"room_id"`
	Weekday   string `form:"weekday" binding:"omitempty,weekday"`
}

// ScheduleStreamQuery is the query of the schedule WebSocket stream.
type ScheduleStreamQuery struct {
	Term string `form:"term" binding:"required,term"`
}
