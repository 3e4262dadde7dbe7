package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeWindow is the optional meeting time of a section, in 24-hour HH:MM.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// String renders the window as HH:MM-HH:MM.
func (w TimeWindow) String() string {
	return w.Start + "-" + w.End
}

// ParseClock converts an H:MM or HH:MM string into minutes after midnight.
func ParseClock(raw string) (int, error) {
	h, m, ok := strings.Cut(raw, ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 || !isDigits(h) || !isDigits(m) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", raw)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hours*60 + minutes, nil
}

// isDigits reports whether s holds only ASCII digits. strconv.Atoi alone
// would accept a sign.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NewTimeWindow validates start and end and returns a zero-padded window.
// The start must be strictly before the end.
func NewTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeWindow{}, err
	}
	if s >= e {
		return TimeWindow{}, fmt.Errorf("start %s must be before end %s", start, end)
	}
	return TimeWindow{Start: formatClock(s), End: formatClock(e)}, nil
}

// ParseTimeWindow parses the combined HH:MM-HH:MM form.
func ParseTimeWindow(raw string) (TimeWindow, error) {
	start, end, ok := strings.Cut(raw, "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("invalid schedule %q: expected HH:MM-HH:MM", raw)
	}
	return NewTimeWindow(strings.TrimSpace(start), strings.TrimSpace(end))
}
