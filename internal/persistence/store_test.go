package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
)

func sampleEvents() []engine.Event {
	return []engine.Event{
		&engine.DiceRolledEvent{Player: "Ann", Value: 4},
		&engine.MovedEvent{Player: "Ann", From: 0, To: 4, Spaces: 4, Space: "Wolf Ridge"},
		&engine.CardDrawnEvent{Player: "Ann", Category: data.CategoryBlessing, CardID: "manna", Title: "Manna"},
	}
}

func checkStore(t *testing.T, store Store) {
	t.Helper()

	_, err := store.Snapshot()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, store.Commit([]byte(`{"version":1}`), sampleEvents()[:2]))
	require.NoError(t, store.Commit([]byte(`{"version":2}`), sampleEvents()[2:]))

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(snap))

	events, err := store.Events()
	require.NoError(t, err)
	require.Len(t, events, 3)

	moved, ok := events[1].(*engine.MovedEvent)
	require.True(t, ok, "expected second event to be MovedEvent")
	assert.Equal(t, 4, moved.To)
	assert.Equal(t, "Wolf Ridge", moved.Space)

	drawn, ok := events[2].(*engine.CardDrawnEvent)
	require.True(t, ok)
	assert.Equal(t, data.CategoryBlessing, drawn.Category)
}

func TestFileStoreCommitLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	checkStore(t, store)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{SnapshotFile, JournalFile}, names, "no temp files left behind")
}

func TestFileStoreReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Commit([]byte(`{}`), sampleEvents()))
	require.NoError(t, store.Close())

	store, err = NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()
	events, err := store.Events()
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestSQLiteStoreCommitLoad(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), DatabaseFile))
	require.NoError(t, err)
	defer store.Close()

	checkStore(t, store)
}

func TestDecodeUnknownEvent(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":"Bogus","data":{}}`))
	assert.ErrorContains(t, err, "unknown event type")
}

func TestSaveManager(t *testing.T) {
	m := NewSaveManager(filepath.Join(t.TempDir(), "saves"))

	names, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	fs, err := m.Create("beta", BackendFile)
	require.NoError(t, err)
	require.NoError(t, fs.Commit([]byte(`{}`), nil))
	require.NoError(t, fs.Close())

	db, err := m.Create("alpha", BackendSQLite)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = m.Create("alpha", BackendFile)
	assert.ErrorContains(t, err, "already exists")

	_, err = m.Create("../escape", BackendFile)
	assert.Error(t, err)

	names, err = m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	loaded, err := m.Load("alpha")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, loaded)
	require.NoError(t, loaded.Close())

	loaded, err = m.Load("beta")
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, loaded)
	require.NoError(t, loaded.Close())

	_, err = m.Load("missing")
	assert.ErrorContains(t, err, "not found")
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("SQLite")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, b)

	b, err = ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, b)

	_, err = ParseBackend("redis")
	assert.Error(t, err)
}
