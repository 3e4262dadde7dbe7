package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
)

// Detector enforces the three per-term uniqueness rules over active sections:
//
//  1. one section per (course, term)
//  2. one section per (professor, term, weekday), professor compared case-insensitively
//  3. one section per (room, term, weekday)
//
// Rules 2 and 3 work at weekday granularity: time windows are not compared.
type Detector struct {
	sections repository.Collection[model.ClassSection]
}

// NewDetector creates a Detector over the section collection.
func NewDetector(sections repository.Collection[model.ClassSection]) *Detector {
	return &Detector{sections: sections}
}

// Check scans the active sections of the candidate's term, skipping
// excludeID, and returns at most one *ConflictError. When several rules are
// broken the course rule wins over the professor rule, which wins over the
// room rule.
func (d *Detector) Check(ctx context.Context, candidate model.ClassSectionDraft, excludeID string) error {
	professor := strings.ToLower(candidate.Professor)

	var professorHit, roomHit string
	for s, err := range d.sections.List(ctx) {
		if err != nil {
			return fmt.Errorf("scan sections: %w", err)
		}
		if !s.Active || s.Term != candidate.Term || (excludeID != "" && s.ID == excludeID) {
			continue
		}

		if s.CourseID == candidate.CourseID {
			return &ConflictError{Kind: ErrCourseAlreadyScheduled, SectionID: s.ID}
		}
		if s.Weekday != candidate.Weekday {
			continue
		}
		if professorHit == "" && strings.ToLower(s.Professor) == professor {
			professorHit = s.ID
		}
		if roomHit == "" && s.RoomID == candidate.RoomID {
			roomHit = s.ID
		}
	}

	switch {
	case professorHit != "":
		return &ConflictError{Kind: ErrProfessorConflict, SectionID: professorHit}
	case roomHit != "":
		return &ConflictError{Kind: ErrRoomConflict, SectionID: roomHit}
	}
	return nil
}

// RoomOccupants returns the active sections holding roomID on weekday in term.
func (d *Detector) RoomOccupants(ctx context.Context, roomID string, term model.Term, weekday model.Weekday) ([]model.ClassSection, error) {
	occupants := []model.ClassSection{}
	for s, err := range d.sections.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan sections: %w", err)
		}
		if s.Active && s.RoomID == roomID && s.Term == term && s.Weekday == weekday {
			occupants = append(occupants, s)
		}
	}
	return occupants, nil
}

// countActive counts active sections matching ref.
func (d *Detector) countActive(ctx context.Context, ref func(model.ClassSection) bool) (int, error) {
	n := 0
	for s, err := range d.sections.List(ctx) {
		if err != nil {
			return 0, fmt.Errorf("scan sections: %w", err)
		}
		if s.Active && ref(s) {
			n++
		}
	}
	return n, nil
}
