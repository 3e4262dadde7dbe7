package model

// Weekday is the day a section meets. Sunday is not schedulable.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays lists every schedulable day in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Valid reports whether w belongs to the closed weekday set.
func (w Weekday) Valid() bool {
	return w.Order() > 0
}

// Order returns the 1-based calendar position of w, or 0 when w is unknown.
func (w Weekday) Order() int {
	for i, d := range Weekdays {
		if d == w {
			return i + 1
		}
	}
	return 0
}
