package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/suderio/pilgrim/internal/engine"
)

// Backend names a store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend accepts the configured store name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendFile, "":
		return BackendFile, nil
	case BackendSQLite:
		return BackendSQLite, nil
	}
	return "", fmt.Errorf("unknown store backend %q (want file or sqlite)", s)
}

// Store persists one saved game: the latest snapshot plus a journal of every event.
type Store interface {
	Commit(snapshot []byte, events []engine.Event) error
	Snapshot() ([]byte, error)
	Events() ([]engine.Event, error)
	Close() error
}

// SaveManager bridges configuration settings with local file organization.
type SaveManager struct {
	SavesDir string
}

// NewSaveManager returns a manager rooted at savesDir.
func NewSaveManager(savesDir string) *SaveManager {
	return &SaveManager{SavesDir: savesDir}
}

// GetSavePath produces the directory of a named save.
func (m *SaveManager) GetSavePath(name string) string {
	return filepath.Join(m.SavesDir, name)
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("save name is required")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid save name %q", name)
	}
	return nil
}

// Create makes a fresh save directory and opens a store of the requested backend in it.
func (m *SaveManager) Create(name string, backend Backend) (Store, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := m.GetSavePath(name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("save %q already exists", name)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return open(path, backend)
}

// Load opens an existing save, picking the backend from the files it holds.
func (m *SaveManager) Load(name string) (Store, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := m.GetSavePath(name)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("save not found: %s", path)
	}
	return open(path, detect(path))
}

// List returns the names of all saves, sorted.
func (m *SaveManager) List() ([]string, error) {
	entries, err := os.ReadDir(m.SavesDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func detect(path string) Backend {
	if _, err := os.Stat(filepath.Join(path, DatabaseFile)); err == nil {
		return BackendSQLite
	}
	return BackendFile
}

func open(path string, backend Backend) (Store, error) {
	if backend == BackendSQLite {
		return OpenSQLite(filepath.Join(path, DatabaseFile))
	}
	return NewFileStore(path)
}
