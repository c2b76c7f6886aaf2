// Package clock supplies the current date at midnight granularity.
// All date arithmetic in the scoring and aggregation packages is
// relative to a Clock so tests can pin the day.
package clock

import "time"

// Clock reports the current calendar day.
type Clock interface {
	// Today returns the current date truncated to midnight in the
	// local time zone.
	Today() time.Time
}

// System is the real clock.
type System struct{}

// Today implements Clock using time.Now.
func (System) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Fixed is a Clock pinned to a single day, for tests.
type Fixed struct {
	Day time.Time
}

// At returns a Fixed clock pinned to the day containing t.
func At(t time.Time) Fixed {
	return Fixed{Day: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// Today returns the pinned day.
func (f Fixed) Today() time.Time { return f.Day }
