package calendar

import (
	"fmt"
	"strings"

	apperrors "github.com/calbot-ai/calbot/internal/errors"
)

// The five operations validate their arguments up front and return either a
// structured success payload or a *Failure. Malformed input and unknown ids
// are expected outcomes, not Go errors: the conversation loop always gets a
// result it can feed back to the model.

// Failure describes a recovered operation failure (validation or not-found).
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func validationFailure(format string, args ...any) *Failure {
	return &Failure{Code: apperrors.CodeValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func notFoundFailure(id string) *Failure {
	return &Failure{
		Code:    apperrors.CodeEventNotFound,
		Message: fmt.Sprintf("Event ID %q not found. List the events first to find the correct ID.", id),
	}
}

// Created is the result of CreateEvent.
type Created struct {
	Event           Event `json:"event"`
	DurationMinutes int   `json:"duration_minutes"`
}

// Listing is the result of ListEvents. Events is sorted by start time; an
// empty listing is a success, not an error.
type Listing struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// Availability is the result of CheckAvailability. Busy (Available == false)
// is a normal outcome; Conflicts is sorted by the conflicting events' start
// times.
type Availability struct {
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Available bool    `json:"available"`
	Conflicts []Event `json:"conflicts,omitempty"`
}

// TimeSpan is a (date, start, end) triple used to report update diffs.
type TimeSpan struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Updated is the result of UpdateEvent, carrying the pre- and post-update
// placement so the caller can report a diff.
type Updated struct {
	Event  Event    `json:"event"`
	Before TimeSpan `json:"before"`
	After  TimeSpan `json:"after"`
}

// Deleted is the result of DeleteEvent.
type Deleted struct {
	Event Event `json:"event"`
}

// CreateEvent validates its arguments, computes the end time and stores a new
// event under a freshly allocated id. Overlap with existing events is
// permitted; creation always succeeds for well-formed input. Events that
// would cross (or touch) midnight are rejected.
func CreateEvent(s *Store, title, date, clock string, durationMinutes int, description string) (*Created, *Failure) {
	if strings.TrimSpace(title) == "" {
		return nil, validationFailure("title must not be empty")
	}
	if _, err := ParseDate(date); err != nil {
		return nil, validationFailure("%v", err)
	}
	start, err := ClockMinutes(clock)
	if err != nil {
		return nil, validationFailure("%v", err)
	}
	if durationMinutes <= 0 {
		return nil, validationFailure("duration must be positive, got %d minutes", durationMinutes)
	}
	end := start + durationMinutes
	if end >= minutesPerDay {
		return nil, validationFailure("event must start and end on the same day: %s + %d minutes crosses midnight", clock, durationMinutes)
	}

	ev := Event{
		ID:          s.NextID(),
		Title:       title,
		Date:        date,
		StartTime:   FormatClock(start),
		EndTime:     FormatClock(end),
		Description: description,
	}
	s.Put(ev)

	return &Created{Event: ev, DurationMinutes: durationMinutes}, nil
}

// ListEvents returns all events on the given date, sorted by start time.
func ListEvents(s *Store, date string) (*Listing, *Failure) {
	if _, err := ParseDate(date); err != nil {
		return nil, validationFailure("%v", err)
	}
	return &Listing{Date: date, Events: s.OnDate(date)}, nil
}

// CheckAvailability reports whether [clock, clock+duration) is free on the
// given date. Two half-open intervals [a,b) and [c,d) overlap iff a < d and
// c < b, so back-to-back events do not conflict.
func CheckAvailability(s *Store, date, clock string, durationMinutes int) (*Availability, *Failure) {
	if _, err := ParseDate(date); err != nil {
		return nil, validationFailure("%v", err)
	}
	reqStart, err := ClockMinutes(clock)
	if err != nil {
		return nil, validationFailure("%v", err)
	}
	if durationMinutes <= 0 {
		return nil, validationFailure("duration must be positive, got %d minutes", durationMinutes)
	}
	reqEnd := reqStart + durationMinutes
	if reqEnd >= minutesPerDay {
		return nil, validationFailure("requested slot must end before midnight: %s + %d minutes crosses midnight", clock, durationMinutes)
	}

	var conflicts []Event
	for _, ev := range s.OnDate(date) {
		evStart, err1 := ClockMinutes(ev.StartTime)
		evEnd, err2 := ClockMinutes(ev.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if reqStart < evEnd && evStart < reqEnd {
			conflicts = append(conflicts, ev)
		}
	}

	return &Availability{
		Date:      date,
		StartTime: FormatClock(reqStart),
		EndTime:   FormatClock(reqEnd),
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// UpdateEvent moves an event to a new date and/or start time. The original
// duration is computed before any mutation and reapplied to a new start time,
// so rescheduling never changes the meeting's length. Empty arguments leave
// the corresponding field untouched. The id lookup is case-insensitive.
func UpdateEvent(s *Store, eventID, newDate, newClock string) (*Updated, *Failure) {
	id := strings.ToUpper(strings.TrimSpace(eventID))
	ev, ok := s.Get(id)
	if !ok {
		return nil, notFoundFailure(id)
	}

	before := TimeSpan{Date: ev.Date, StartTime: ev.StartTime, EndTime: ev.EndTime}
	duration := ev.DurationMinutes()

	if newDate != "" {
		if _, err := ParseDate(newDate); err != nil {
			return nil, validationFailure("%v", err)
		}
	}

	if newClock != "" {
		start, err := ClockMinutes(newClock)
		if err != nil {
			return nil, validationFailure("%v", err)
		}
		end := start + duration
		if end >= minutesPerDay {
			return nil, validationFailure("event must start and end on the same day: moving to %s would push the %d-minute event past midnight", newClock, duration)
		}
		ev.StartTime = FormatClock(start)
		ev.EndTime = FormatClock(end)
	}
	if newDate != "" {
		ev.Date = newDate
	}

	s.Put(ev)

	return &Updated{
		Event:  ev,
		Before: before,
		After:  TimeSpan{Date: ev.Date, StartTime: ev.StartTime, EndTime: ev.EndTime},
	}, nil
}

// DeleteEvent removes an event by id (case-insensitive) and returns the
// removed record for confirmation messaging.
func DeleteEvent(s *Store, eventID string) (*Deleted, *Failure) {
	id := strings.ToUpper(strings.TrimSpace(eventID))
	ev, ok := s.Delete(id)
	if !ok {
		return nil, notFoundFailure(id)
	}
	return &Deleted{Event: ev}, nil
}
