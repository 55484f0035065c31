package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextEventID(t *testing.T) {
	tests := []struct {
		name   string
		events map[string]Event
		want   string
	}{
		{"empty store", map[string]Event{}, "EVT001"},
		{
			"sequential",
			map[string]Event{
				"EVT001": {ID: "EVT001"},
				"EVT002": {ID: "EVT002"},
			},
			"EVT003",
		},
		{
			"gap after deletion",
			map[string]Event{
				"EVT001": {ID: "EVT001"},
				"EVT003": {ID: "EVT003"},
			},
			"EVT004",
		},
		{
			"ignores malformed ids",
			map[string]Event{
				"EVT002":  {ID: "EVT002"},
				"custom":  {ID: "custom"},
				"EVTabc":  {ID: "EVTabc"},
				"MTG0005": {ID: "MTG0005"},
			},
			"EVT003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextEventID(tt.events))
		})
	}
}

func TestStorePutGetDelete(t *testing.T) {
	s := NewStore(nil, nil)

	ev := Event{ID: "EVT001", Title: "Standup", Date: "2025-03-14", StartTime: "10:00", EndTime: "10:30"}
	s.Put(ev)

	got, ok := s.Get("EVT001")
	require.True(t, ok)
	assert.Equal(t, ev, got)

	removed, ok := s.Delete("EVT001")
	require.True(t, ok)
	assert.Equal(t, ev, removed)
	assert.Equal(t, 0, s.Len())

	_, ok = s.Delete("EVT001")
	assert.False(t, ok)
}

func TestOnDateSortsByStartTimeThenID(t *testing.T) {
	s := NewStore(nil, nil)

	s.Put(Event{ID: "EVT002", Title: "B", Date: "2025-03-14", StartTime: "10:00", EndTime: "10:30"})
	s.Put(Event{ID: "EVT001", Title: "A", Date: "2025-03-14", StartTime: "10:00", EndTime: "11:00"})
	s.Put(Event{ID: "EVT003", Title: "C", Date: "2025-03-14", StartTime: "09:00", EndTime: "09:30"})

	events := s.OnDate("2025-03-14")
	require.Len(t, events, 3)
	assert.Equal(t, "EVT003", events[0].ID)
	assert.Equal(t, "EVT001", events[1].ID)
	assert.Equal(t, "EVT002", events[2].ID)
}

func TestSeedInstallsDemoEvents(t *testing.T) {
	s := NewStore(nil, nil)

	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	s.Seed(now)

	assert.Equal(t, 3, s.Len())

	standup, ok := s.Get("EVT001")
	require.True(t, ok)
	assert.Equal(t, "Team Standup", standup.Title)
	assert.Equal(t, "2025-03-14", standup.Date)

	call, ok := s.Get("EVT003")
	require.True(t, ok)
	assert.Equal(t, "Client Call", call.Title)
	assert.Equal(t, "2025-03-15", call.Date)
}

func TestNewFromSyncerPrefersPersistedData(t *testing.T) {
	syncer := &fakeSyncer{
		events: map[string]Event{
			"EVT007": {ID: "EVT007", Title: "Persisted", Date: "2025-03-14", StartTime: "09:00", EndTime: "09:30"},
		},
	}

	s := NewFromSyncer(syncer, nil, true)
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("EVT007")
	assert.True(t, ok)
}

func TestNewFromSyncerSeedsWhenEmpty(t *testing.T) {
	s := NewFromSyncer(&fakeSyncer{events: map[string]Event{}}, nil, true)
	assert.Equal(t, 3, s.Len())

	bare := NewFromSyncer(&fakeSyncer{events: map[string]Event{}}, nil, false)
	assert.Equal(t, 0, bare.Len())
}

func TestMutationsReachSyncer(t *testing.T) {
	syncer := &fakeSyncer{events: map[string]Event{}}
	s := NewFromSyncer(syncer, nil, false)

	mustCreate(t, s, "Standup", "2025-03-14", "10:00", 30)
	assert.NotZero(t, syncer.upserts)

	_, fail := DeleteEvent(s, "EVT001")
	require.Nil(t, fail)
	assert.Equal(t, []string{"EVT001"}, syncer.deleted)
}

// fakeSyncer records persistence calls for store tests.
type fakeSyncer struct {
	events  map[string]Event
	upserts int
	deleted []string
}

func (f *fakeSyncer) LoadAll() (map[string]Event, error) {
	out := make(map[string]Event, len(f.events))
	for id, ev := range f.events {
		out[id] = ev
	}
	return out, nil
}

func (f *fakeSyncer) UpsertMany(events map[string]Event) error {
	f.upserts++
	for id, ev := range events {
		f.events[id] = ev
	}
	return nil
}

func (f *fakeSyncer) DeleteMany(ids []string) error {
	f.deleted = append(f.deleted, ids...)
	for _, id := range ids {
		delete(f.events, id)
	}
	return nil
}
