package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/suderio/pilgrim/internal/engine"
	_ "modernc.org/sqlite"
)

// DatabaseFile is the SQLite file name inside a save directory.
const DatabaseFile = "game.db"

const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
  id         INTEGER PRIMARY KEY CHECK (id = 1),
  data       TEXT    NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
  seq  INTEGER PRIMARY KEY AUTOINCREMENT,
  type TEXT NOT NULL,
  data TEXT NOT NULL
);`

// SQLiteStore keeps the snapshot and the event journal in one SQLite database, so a commit
// is a single transaction.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Commit upserts the snapshot and appends the events in one transaction.
func (s *SQLiteStore) Commit(snapshot []byte, events []engine.Event) (err error) {
	tx, err := s.sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(
		`INSERT INTO snapshot (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(snapshot), time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	for _, evt := range events {
		var line []byte
		line, err = EncodeEvent(evt)
		if err != nil {
			return err
		}
		if _, err = tx.Exec(`INSERT INTO events (type, data) VALUES (?, ?)`, string(evt.Type()), string(line)); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Snapshot returns the last committed snapshot.
func (s *SQLiteStore) Snapshot() ([]byte, error) {
	var data string
	err := s.sqlDB.QueryRow(`SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return []byte(data), nil
}

// Events returns the journal in commit order.
func (s *SQLiteStore) Events() ([]engine.Event, error) {
	rows, err := s.sqlDB.Query(`SELECT data FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []engine.Event
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt, err := DecodeEvent([]byte(data))
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
