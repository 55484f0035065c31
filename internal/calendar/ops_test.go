package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(nil, nil)
}

func mustCreate(t *testing.T, s *Store, title, date, clock string, duration int) Event {
	t.Helper()
	created, fail := CreateEvent(s, title, date, clock, duration, "")
	require.Nil(t, fail)
	return created.Event
}

func TestCreateEventComputesEndTime(t *testing.T) {
	s := newTestStore(t)

	created, fail := CreateEvent(s, "Design Sync", "2025-03-14", "14:00", 90, "weekly sync")
	require.Nil(t, fail)

	assert.Equal(t, "EVT001", created.Event.ID)
	assert.Equal(t, "14:00", created.Event.StartTime)
	assert.Equal(t, "15:30", created.Event.EndTime)
	assert.Equal(t, 90, created.DurationMinutes)
	assert.Equal(t, "weekly sync", created.Event.Description)

	stored, ok := s.Get("EVT001")
	require.True(t, ok)
	assert.Equal(t, created.Event, stored)
}

func TestCreateEventAllowsOverlap(t *testing.T) {
	s := newTestStore(t)

	mustCreate(t, s, "First", "2025-03-14", "10:00", 60)
	created, fail := CreateEvent(s, "Second", "2025-03-14", "10:30", 60, "")
	require.Nil(t, fail)

	assert.Equal(t, "EVT002", created.Event.ID)
	assert.Equal(t, 2, s.Len())
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		date     string
		clock    string
		duration int
	}{
		{"empty title", "", "2025-03-14", "10:00", 30},
		{"whitespace title", "   ", "2025-03-14", "10:00", 30},
		{"malformed date", "Standup", "14-03-2025", "10:00", 30},
		{"malformed time", "Standup", "2025-03-14", "10am", 30},
		{"zero duration", "Standup", "2025-03-14", "10:00", 0},
		{"negative duration", "Standup", "2025-03-14", "10:00", -15},
		{"crosses midnight", "Late", "2025-03-14", "23:30", 45},
		{"ends exactly at midnight", "Late", "2025-03-14", "23:00", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			created, fail := CreateEvent(s, tt.title, tt.date, tt.clock, tt.duration, "")
			assert.Nil(t, created)
			require.NotNil(t, fail)
			assert.Equal(t, 0, s.Len(), "failed create must not mutate the store")
		})
	}
}

func TestListEventsSortedByStartTime(t *testing.T) {
	s := newTestStore(t)

	mustCreate(t, s, "Afternoon", "2025-03-14", "15:00", 30)
	mustCreate(t, s, "Morning", "2025-03-14", "09:00", 30)
	mustCreate(t, s, "Midday", "2025-03-14", "12:00", 30)
	mustCreate(t, s, "Other Day", "2025-03-15", "08:00", 30)

	listing, fail := ListEvents(s, "2025-03-14")
	require.Nil(t, fail)

	require.Len(t, listing.Events, 3)
	assert.Equal(t, "Morning", listing.Events[0].Title)
	assert.Equal(t, "Midday", listing.Events[1].Title)
	assert.Equal(t, "Afternoon", listing.Events[2].Title)
}

func TestListEventsEmptyDayIsSuccess(t *testing.T) {
	s := newTestStore(t)

	listing, fail := ListEvents(s, "2025-03-14")
	require.Nil(t, fail)
	assert.Empty(t, listing.Events)
	assert.Equal(t, "2025-03-14", listing.Date)
}

func TestListEventsRejectsMalformedDate(t *testing.T) {
	s := newTestStore(t)

	listing, fail := ListEvents(s, "tomorrow")
	assert.Nil(t, listing)
	require.NotNil(t, fail)
}

func TestCheckAvailability(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "Standup", "2025-03-14", "10:00", 30)

	tests := []struct {
		name      string
		date      string
		clock     string
		duration  int
		available bool
	}{
		{"clear slot", "2025-03-14", "13:00", 60, true},
		{"full overlap", "2025-03-14", "10:00", 30, false},
		{"partial overlap from before", "2025-03-14", "09:45", 30, false},
		{"partial overlap from after", "2025-03-14", "10:15", 30, false},
		{"starts exactly at event end", "2025-03-14", "10:30", 30, true},
		{"ends exactly at event start", "2025-03-14", "09:30", 30, true},
		{"other date", "2025-03-15", "10:00", 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail, fail := CheckAvailability(s, tt.date, tt.clock, tt.duration)
			require.Nil(t, fail)
			assert.Equal(t, tt.available, avail.Available)
			if tt.available {
				assert.Empty(t, avail.Conflicts)
			} else {
				assert.NotEmpty(t, avail.Conflicts)
			}
		})
	}
}

func TestCheckAvailabilityReportsAllConflictsSorted(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "Late", "2025-03-14", "11:00", 60)
	mustCreate(t, s, "Early", "2025-03-14", "09:00", 120)

	avail, fail := CheckAvailability(s, "2025-03-14", "09:30", 180)
	require.Nil(t, fail)

	assert.False(t, avail.Available)
	require.Len(t, avail.Conflicts, 2)
	assert.Equal(t, "Early", avail.Conflicts[0].Title)
	assert.Equal(t, "Late", avail.Conflicts[1].Title)
}

func TestCheckAvailabilityValidation(t *testing.T) {
	s := newTestStore(t)

	_, fail := CheckAvailability(s, "bad-date", "10:00", 30)
	require.NotNil(t, fail)

	_, fail = CheckAvailability(s, "2025-03-14", "25:00", 30)
	require.NotNil(t, fail)

	_, fail = CheckAvailability(s, "2025-03-14", "10:00", 0)
	require.NotNil(t, fail)

	_, fail = CheckAvailability(s, "2025-03-14", "23:45", 30)
	require.NotNil(t, fail)
}

func TestUpdateEventPreservesDuration(t *testing.T) {
	s := newTestStore(t)
	ev := mustCreate(t, s, "Review", "2025-03-14", "14:00", 60)

	updated, fail := UpdateEvent(s, ev.ID, "", "16:00")
	require.Nil(t, fail)

	assert.Equal(t, "16:00", updated.Event.StartTime)
	assert.Equal(t, "17:00", updated.Event.EndTime)
	assert.Equal(t, "2025-03-14", updated.Event.Date)

	assert.Equal(t, TimeSpan{Date: "2025-03-14", StartTime: "14:00", EndTime: "15:00"}, updated.Before)
	assert.Equal(t, TimeSpan{Date: "2025-03-14", StartTime: "16:00", EndTime: "17:00"}, updated.After)
}

func TestUpdateEventDateOnly(t *testing.T) {
	s := newTestStore(t)
	ev := mustCreate(t, s, "Review", "2025-03-14", "14:00", 60)

	updated, fail := UpdateEvent(s, ev.ID, "2025-03-21", "")
	require.Nil(t, fail)

	assert.Equal(t, "2025-03-21", updated.Event.Date)
	assert.Equal(t, "14:00", updated.Event.StartTime)
	assert.Equal(t, "15:00", updated.Event.EndTime)
}

func TestUpdateEventDateAndTime(t *testing.T) {
	s := newTestStore(t)
	ev := mustCreate(t, s, "Review", "2025-03-14", "14:00", 45)

	updated, fail := UpdateEvent(s, ev.ID, "2025-03-21", "09:15")
	require.Nil(t, fail)

	assert.Equal(t, "2025-03-21", updated.Event.Date)
	assert.Equal(t, "09:15", updated.Event.StartTime)
	assert.Equal(t, "10:00", updated.Event.EndTime)
}

func TestUpdateEventCaseInsensitiveID(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "Review", "2025-03-14", "14:00", 60)

	updated, fail := UpdateEvent(s, "evt001", "", "16:00")
	require.Nil(t, fail)
	assert.Equal(t, "EVT001", updated.Event.ID)
}

func TestUpdateEventNotFound(t *testing.T) {
	s := newTestStore(t)

	updated, fail := UpdateEvent(s, "EVT999", "2025-03-14", "")
	assert.Nil(t, updated)
	require.NotNil(t, fail)
	assert.Contains(t, fail.Message, "EVT999")
}

func TestUpdateEventRejectsMidnightCrossing(t *testing.T) {
	s := newTestStore(t)
	ev := mustCreate(t, s, "Long Workshop", "2025-03-14", "09:00", 180)

	updated, fail := UpdateEvent(s, ev.ID, "", "22:30")
	assert.Nil(t, updated)
	require.NotNil(t, fail)

	// Refused update must leave the event untouched.
	stored, ok := s.Get(ev.ID)
	require.True(t, ok)
	assert.Equal(t, "09:00", stored.StartTime)
	assert.Equal(t, "12:00", stored.EndTime)
}

func TestUpdateEventRejectsMalformedArguments(t *testing.T) {
	s := newTestStore(t)
	ev := mustCreate(t, s, "Review", "2025-03-14", "14:00", 60)

	_, fail := UpdateEvent(s, ev.ID, "next friday", "")
	require.NotNil(t, fail)

	_, fail = UpdateEvent(s, ev.ID, "", "2pm")
	require.NotNil(t, fail)

	stored, _ := s.Get(ev.ID)
	assert.Equal(t, "2025-03-14", stored.Date)
	assert.Equal(t, "14:00", stored.StartTime)
}

func TestDeleteEventReturnsRemovedRecord(t *testing.T) {
	s := newTestStore(t)
	ev := mustCreate(t, s, "Review", "2025-03-14", "14:00", 60)

	deleted, fail := DeleteEvent(s, "evt001")
	require.Nil(t, fail)
	assert.Equal(t, ev, deleted.Event)
	assert.Equal(t, 0, s.Len())

	// Second delete of the same id is a not-found failure.
	_, fail = DeleteEvent(s, ev.ID)
	require.NotNil(t, fail)
}

func TestRenderListing(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "Standup", "2025-03-14", "10:00", 30)

	listing, fail := ListEvents(s, "2025-03-14")
	require.Nil(t, fail)

	text := RenderListing(listing)
	assert.Contains(t, text, "Events on 2025-03-14 (1 found)")
	assert.Contains(t, text, "[EVT001] Standup: 10:00 AM to 10:30 AM")

	empty, fail := ListEvents(s, "2025-03-15")
	require.Nil(t, fail)
	assert.Equal(t, "No events found on 2025-03-15. The calendar is free that day.", RenderListing(empty))
}

func TestRenderAvailability(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "Standup", "2025-03-14", "10:00", 30)

	free, fail := CheckAvailability(s, "2025-03-14", "13:00", 30)
	require.Nil(t, fail)
	assert.Equal(t, "The slot 01:00 PM to 01:30 PM on 2025-03-14 is available.", RenderAvailability(free))

	busy, fail := CheckAvailability(s, "2025-03-14", "10:15", 30)
	require.Nil(t, fail)
	text := RenderAvailability(busy)
	assert.Contains(t, text, "busy")
	assert.Contains(t, text, "[EVT001] Standup")
}
