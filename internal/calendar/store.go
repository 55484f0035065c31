package calendar

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/calbot-ai/calbot/internal/logging"
)

// Syncer mirrors the store's contents to durable storage. It is an optional
// collaborator: a failing syncer is logged and otherwise ignored, the
// in-memory mutation always wins.
type Syncer interface {
	// LoadAll returns all persisted events keyed by id.
	LoadAll() (map[string]Event, error)

	// UpsertMany writes the given events, inserting or overwriting by id.
	UpsertMany(events map[string]Event) error

	// DeleteMany removes the given ids.
	DeleteMany(ids []string) error
}

// Store is the in-memory mapping of event id to event record.
// It is constructed explicitly at session start and shared by reference;
// the mutex makes it safe for a chat session and a direct listing to share
// one process, but the design still assumes a single logical writer.
type Store struct {
	mu     sync.RWMutex
	events map[string]Event
	syncer Syncer
	logger *slog.Logger
}

// NewStore creates an empty store. syncer and logger may be nil.
func NewStore(syncer Syncer, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		events: make(map[string]Event),
		syncer: syncer,
		logger: logger,
	}
}

// NewFromSyncer builds a store from persisted data. When the syncer is
// unavailable or empty and seed is true, the default demo events are
// installed instead.
func NewFromSyncer(syncer Syncer, logger *slog.Logger, seed bool) *Store {
	s := NewStore(syncer, logger)

	if syncer != nil {
		loaded, err := syncer.LoadAll()
		if err != nil {
			s.logger.Warn("loading persisted events failed", logging.Err(err))
		} else if len(loaded) > 0 {
			s.events = loaded
			return s
		}
	}

	if seed {
		s.Seed(time.Now())
	}
	return s
}

// Seed installs the default demo events relative to the given day:
// a standup and a review today, a client call tomorrow.
func (s *Store) Seed(now time.Time) {
	today := now.Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)

	seed := []Event{
		{ID: "EVT001", Title: "Team Standup", Date: today, StartTime: "10:00", EndTime: "10:30", Description: "Daily team sync"},
		{ID: "EVT002", Title: "Project Review", Date: today, StartTime: "14:00", EndTime: "15:00", Description: "Q1 project review meeting"},
		{ID: "EVT003", Title: "Client Call", Date: tomorrow, StartTime: "11:00", EndTime: "11:30", Description: "Weekly client update call"},
	}

	s.mu.Lock()
	for _, ev := range seed {
		s.events[ev.ID] = ev
	}
	s.mu.Unlock()

	s.syncAll()
}

// All returns a snapshot of all events keyed by id.
func (s *Store) All() map[string]Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Event, len(s.events))
	for id, ev := range s.events {
		out[id] = ev
	}
	return out
}

// Get returns the event with the given id.
func (s *Store) Get(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	return ev, ok
}

// Put inserts or overwrites an event. Used for both create and update.
func (s *Store) Put(ev Event) {
	s.mu.Lock()
	s.events[ev.ID] = ev
	s.mu.Unlock()

	s.syncAll()
}

// Delete removes an event and returns the prior record.
func (s *Store) Delete(id string) (Event, bool) {
	s.mu.Lock()
	ev, ok := s.events[id]
	if ok {
		delete(s.events, id)
	}
	s.mu.Unlock()

	if ok {
		s.syncDelete(id)
	}
	return ev, ok
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// NextID allocates the next sequential event id for the store's current
// contents.
func (s *Store) NextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NextEventID(s.events)
}

// NextEventID computes the next id for a mapping: EVT + (max numeric suffix
// + 1), zero-padded to three digits. An empty mapping yields EVT001.
// Allocation is not safe under concurrent writers; single-writer access is
// assumed.
func NextEventID(events map[string]Event) string {
	maxNum := 0
	for id := range events {
		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(id), "EVT"))
		if err != nil {
			continue
		}
		if n > maxNum {
			maxNum = n
		}
	}
	return fmt.Sprintf("EVT%03d", maxNum+1)
}

// OnDate returns the events on the given date sorted by start time
// ascending, ties broken by id so output is stable.
func (s *Store) OnDate(date string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, ev := range s.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// syncAll mirrors the full current contents to the syncer.
func (s *Store) syncAll() {
	if s.syncer == nil {
		return
	}
	if err := s.syncer.UpsertMany(s.All()); err != nil {
		s.logger.Warn("event sync failed", logging.Operation("upsert"), logging.Err(err))
	}
}

// syncDelete removes an id from the syncer and re-mirrors the rest.
func (s *Store) syncDelete(id string) {
	if s.syncer == nil {
		return
	}
	if err := s.syncer.DeleteMany([]string{id}); err != nil {
		s.logger.Warn("event sync failed", logging.Operation("delete"), logging.EventID(id), logging.Err(err))
	}
	s.syncAll()
}
