package model

// CourseDraft carries the mutable fields of a course (disciplina).
type CourseDraft struct {
	Name        string `json:"name"`
	Program     string `json:"program"`
	Description string `json:"description"`
	CreditHours int    `json:"credit_hours"`
	Term        Term   `json:"term"`
}

// Course is a catalog subject offered at most once per term.
type Course struct {
	Record
	CourseDraft
}

// CourseSummary is the denormalized view of a course attached to a section.
type CourseSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Program     string `json:"program"`
	CreditHours int    `json:"credit_hours"`
	Description string `json:"description,omitempty"`
	Term        Term   `json:"term,omitempty"`
}

// Summary projects the course into a CourseSummary. Detailed adds
// description and term.
func (c Course) Summary(detailed bool) *CourseSummary {
	s := &CourseSummary{
		ID:          c.ID,
		Name:        c.Name,
		Program:     c.Program,
		CreditHours: c.CreditHours,
	}
	if detailed {
		s.Description = c.Description
		s.Term = c.Term
	}
	return s
}
