package calendar

import (
	"database/sql"
	"fmt"
	"strings"

	// SQLite driver (required for database/sql registration).
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSyncer persists the event store to a SQLite database. It is the
// optional persistence collaborator: the store calls it after every mutation
// and ignores its failures beyond logging them.
type SQLiteSyncer struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the events database at the given
// path.
func OpenSQLite(path string) (*SQLiteSyncer, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS events (
		event_id    TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		date        TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date, start_time);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteSyncer{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSyncer) Close() error {
	return s.db.Close()
}

// LoadAll returns all persisted events keyed by id.
func (s *SQLiteSyncer) LoadAll() (map[string]Event, error) {
	rows, err := s.db.Query(`SELECT event_id, title, date, start_time, end_time, description FROM events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make(map[string]Event)
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Date, &ev.StartTime, &ev.EndTime, &ev.Description); err != nil {
			return nil, err
		}
		events[ev.ID] = ev
	}
	return events, rows.Err()
}

// UpsertMany writes the given events, inserting or overwriting by id.
func (s *SQLiteSyncer) UpsertMany(events map[string]Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO events (event_id, title, date, start_time, end_time, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			description = excluded.description`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(ev.ID, ev.Title, ev.Date, ev.StartTime, ev.EndTime, ev.Description); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteMany removes the given ids.
func (s *SQLiteSyncer) DeleteMany(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := s.db.Exec(fmt.Sprintf(`DELETE FROM events WHERE event_id IN (%s)`, placeholders), args...)
	return err
}
