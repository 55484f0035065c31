// Package calendar owns the event record, the in-memory event store and the
// five scheduling operations CalBot exposes to the model.
package calendar

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// ClockLayout is the wire format for times of day (HH:MM, 24-hour).
	ClockLayout = "15:04"

	// displayClockLayout is the 12-hour format used in user-facing text.
	displayClockLayout = "03:04 PM"
)

const minutesPerDay = 24 * 60

// Event is one calendar entry. Times are timezone-naive local clock values;
// no conversion is ever applied to stored dates or times.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description,omitempty"`
}

// DurationMinutes returns the event length in minutes.
func (e Event) DurationMinutes() int {
	start, err1 := ClockMinutes(e.StartTime)
	end, err2 := ClockMinutes(e.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	return end - start
}

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ClockMinutes parses an HH:MM clock value into minutes since midnight.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM (24-hour)", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Clock12 renders an HH:MM clock value in 12-hour form for display.
// Invalid input is returned unchanged so rendering never fails.
func Clock12(clock string) string {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return clock
	}
	return t.Format(displayClockLayout)
}
