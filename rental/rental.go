// Package rental holds the date-interval primitives the booking and
// reservation engines share. All rental periods are date-only, half-open
// intervals [start, end): the end day is excluded, so a car returned on a
// given day can be picked up again the same day.
package rental

import "time"

// DateFormat is the wire format for all rental dates.
const DateFormat = "2006-01-02"

// DateOf truncates t to a date-only value in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the server wall-clock date, truncated.
func Today() time.Time {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// ValidRange reports whether end is strictly after start.
func ValidRange(start, end time.Time) bool {
	return end.After(start)
}

// Period is an occupied interval. A nil End means the period is open-ended:
// the car is out and has not been returned.
type Period struct {
	Start time.Time
	End   *time.Time
}

// Overlaps reports whether p overlaps the requested [start, end). Open-ended
// periods block everything from their start onward. A period ending exactly
// on start does not overlap.
func (p Period) Overlaps(start, end time.Time) bool {
	if !p.Start.Before(end) {
		return false
	}
	if p.End == nil {
		return true
	}
	return p.End.After(start)
}
