package persistence

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suderio/pilgrim/internal/engine"
)

// ErrNoSnapshot is returned by a store that has never been committed to.
var ErrNoSnapshot = errors.New("no saved snapshot")

// Save file names inside a file-backed save directory.
const (
	SnapshotFile = "state.json"
	JournalFile  = "journal.jsonl"
)

// FileStore keeps the latest snapshot in a JSON file and an append-only JSONL event journal.
type FileStore struct {
	dir  string
	file *os.File
}

// NewFileStore opens or creates the journal inside dir.
func NewFileStore(dir string) (*FileStore, error) {
	file, err := os.OpenFile(filepath.Join(dir, JournalFile), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &FileStore{dir: dir, file: file}, nil
}

// Commit replaces the snapshot atomically, then appends the events. A failed snapshot
// write leaves both the old snapshot and the journal untouched.
func (s *FileStore) Commit(snapshot []byte, events []engine.Event) error {
	if err := s.writeSnapshot(snapshot); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, evt := range events {
		line, err := EncodeEvent(evt)
		if err != nil {
			return err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return nil
	}
	if _, err := s.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append journal: %w", err)
	}
	return s.file.Sync()
}

func (s *FileStore) writeSnapshot(snapshot []byte) error {
	tmp, err := os.CreateTemp(s.dir, SnapshotFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(snapshot); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, SnapshotFile)); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Snapshot returns the last committed snapshot.
func (s *FileStore) Snapshot() ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, SnapshotFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return b, nil
}

// Events replays all jsonl lines and unpacks them to an Event slice.
func (s *FileStore) Events() ([]engine.Event, error) {
	// Reset file pointer to beginning
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var events []engine.Event
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		evt, err := DecodeEvent(scanner.Bytes())
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, scanner.Err()
}

// Close handles safe shutdown.
func (s *FileStore) Close() error {
	return s.file.Close()
}
