// Calendar tool executors. Each tool validates its own input, runs the
// store operation, and returns a structured result; rendering for the
// model happens in the caller.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/calbot-ai/calbot/internal/calendar"
)

// ============================================================
// Input Coercion
// ============================================================

// stringArg extracts a string argument. Missing and empty are equivalent.
func stringArg(input map[string]any, key string) string {
	v, ok := input[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// intArg extracts an integer argument. JSON numbers decode as float64, so
// both forms are accepted.
func intArg(input map[string]any, key string, fallback int) (int, error) {
	v, ok := input[key]
	if !ok {
		return fallback, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}

// ============================================================
// create_event
// ============================================================

// CreateEventTool schedules a new calendar event.
type CreateEventTool struct {
	store *calendar.Store
}

// NewCreateEventTool creates a create_event executor.
func NewCreateEventTool(store *calendar.Store) *CreateEventTool {
	return &CreateEventTool{store: store}
}

func (t *CreateEventTool) Name() string {
	return "create_event"
}

func (t *CreateEventTool) Description() string {
	return "Create a new calendar event with a title, date, start time, and duration"
}

func (t *CreateEventTool) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	duration, err := intArg(input, "duration_minutes", 0)
	if err != nil {
		return TimedResult(NewErrorResult(err), start), nil
	}

	created, fail := calendar.CreateEvent(
		t.store,
		stringArg(input, "title"),
		stringArg(input, "date"),
		stringArg(input, "time"),
		duration,
		stringArg(input, "description"),
	)
	if fail != nil {
		return TimedResult(NewFailureResult(fail.Message), start), nil
	}
	return TimedResult(NewSuccessResult(created), start), nil
}

// ============================================================
// list_events
// ============================================================

// ListEventsTool lists events on a date.
type ListEventsTool struct {
	store *calendar.Store
}

// NewListEventsTool creates a list_events executor.
func NewListEventsTool(store *calendar.Store) *ListEventsTool {
	return &ListEventsTool{store: store}
}

func (t *ListEventsTool) Name() string {
	return "list_events"
}

func (t *ListEventsTool) Description() string {
	return "List all calendar events on a specific date"
}

func (t *ListEventsTool) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	listing, fail := calendar.ListEvents(t.store, stringArg(input, "date"))
	if fail != nil {
		return TimedResult(NewFailureResult(fail.Message), start), nil
	}
	return TimedResult(NewSuccessResult(listing), start), nil
}

// ============================================================
// check_availability
// ============================================================

// CheckAvailabilityTool reports whether a time span is free.
type CheckAvailabilityTool struct {
	store *calendar.Store
}

// NewCheckAvailabilityTool creates a check_availability executor.
func NewCheckAvailabilityTool(store *calendar.Store) *CheckAvailabilityTool {
	return &CheckAvailabilityTool{store: store}
}

func (t *CheckAvailabilityTool) Name() string {
	return "check_availability"
}

func (t *CheckAvailabilityTool) Description() string {
	return "Check whether a time span on a date is free of conflicting events"
}

func (t *CheckAvailabilityTool) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	duration, err := intArg(input, "duration_minutes", 0)
	if err != nil {
		return TimedResult(NewErrorResult(err), start), nil
	}

	avail, fail := calendar.CheckAvailability(
		t.store,
		stringArg(input, "date"),
		stringArg(input, "time"),
		duration,
	)
	if fail != nil {
		return TimedResult(NewFailureResult(fail.Message), start), nil
	}
	return TimedResult(NewSuccessResult(avail), start), nil
}

// ============================================================
// update_event
// ============================================================

// UpdateEventTool reschedules an existing event.
type UpdateEventTool struct {
	store *calendar.Store
}

// NewUpdateEventTool creates an update_event executor.
func NewUpdateEventTool(store *calendar.Store) *UpdateEventTool {
	return &UpdateEventTool{store: store}
}

func (t *UpdateEventTool) Name() string {
	return "update_event"
}

func (t *UpdateEventTool) Description() string {
	return "Reschedule an existing event to a new date and/or start time, keeping its duration"
}

func (t *UpdateEventTool) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	updated, fail := calendar.UpdateEvent(
		t.store,
		stringArg(input, "event_id"),
		stringArg(input, "new_date"),
		stringArg(input, "new_time"),
	)
	if fail != nil {
		return TimedResult(NewFailureResult(fail.Message), start), nil
	}
	return TimedResult(NewSuccessResult(updated), start), nil
}

// ============================================================
// delete_event
// ============================================================

// DeleteEventTool removes an event.
type DeleteEventTool struct {
	store *calendar.Store
}

// NewDeleteEventTool creates a delete_event executor.
func NewDeleteEventTool(store *calendar.Store) *DeleteEventTool {
	return &DeleteEventTool{store: store}
}

func (t *DeleteEventTool) Name() string {
	return "delete_event"
}

func (t *DeleteEventTool) Description() string {
	return "Delete a calendar event by its event ID"
}

func (t *DeleteEventTool) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	deleted, fail := calendar.DeleteEvent(t.store, stringArg(input, "event_id"))
	if fail != nil {
		return TimedResult(NewFailureResult(fail.Message), start), nil
	}
	return TimedResult(NewSuccessResult(deleted), start), nil
}
