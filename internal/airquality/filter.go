package airquality

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of derived dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of derived dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range with both bounds truncated to the day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Reversed reports whether Start is after End.
func (r DateRange) Reversed() bool {
	return r.Start.After(r.End)
}

// Contains reports whether date falls within the range, bounds included.
func (r DateRange) Contains(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

// Within reports whether both bounds of r lie inside outer.
func (r DateRange) Within(outer DateRange) bool {
	return outer.Contains(r.Start) && outer.Contains(r.End)
}

// String formats the range as "start..end".
func (r DateRange) String() string {
	return DateLabel(r.Start) + ".." + DateLabel(r.End)
}

// FilterRange returns the observations whose date lies in r. The input is
// not modified. A reversed range yields an empty result.
func FilterRange(observations []Observation, r DateRange) []Observation {
	r = NewDateRange(r.Start, r.End)
	if r.Reversed() {
		return []Observation{}
	}

	out := make([]Observation, 0, len(observations))
	for i := range observations {
		if r.Contains(observations[i].Date) {
			out = append(out, observations[i])
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
