package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestRecordDeduplicatesRepeats(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record("ls -la"))
	require.NoError(t, store.Record("ls -la"))

	entries := store.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "ls -la", entries[0].Command)
	require.Equal(t, 2, entries[0].Frequency)
}

func TestRecordRefreshesTimestampInPlace(t *testing.T) {
	store := newTestStore(t)
	now := time.Unix(1000, 0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Record("make test"))
	now = time.Unix(2000, 0)
	require.NoError(t, store.Record("make test"))

	entries := store.Entries()
	require.Len(t, entries, 1)
	require.EqualValues(t, 2000, entries[0].LastUsed)
}

func TestCapEvictsOldestInserted(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 101; i++ {
		require.NoError(t, store.Record(fmt.Sprintf("cmd-%03d", i)))
	}

	entries := store.Entries()
	require.Len(t, entries, 100)
	// cmd-000 was evicted; relative order of the rest is unchanged.
	require.Equal(t, "cmd-001", entries[0].Command)
	require.Equal(t, "cmd-100", entries[99].Command)

	// Lookup map consistency: every hash resolves to an entry bearing it.
	require.Len(t, store.index, 100)
	for h, i := range store.index {
		require.Equal(t, h, entries[i].Hash)
		require.Equal(t, h, hashCommand(entries[i].Command))
	}
}

func TestRepeatDoesNotTriggerEviction(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 100; i++ {
		require.NoError(t, store.Record(fmt.Sprintf("cmd-%03d", i)))
	}
	require.NoError(t, store.Record("cmd-000"))

	entries := store.Entries()
	require.Len(t, entries, 100)
	require.Equal(t, "cmd-000", entries[0].Command)
	require.Equal(t, 2, entries[0].Frequency)
}

func TestSearchReturnsInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	for _, cmd := range []string{"git status", "ls", "git log", "git status", "go build"} {
		require.NoError(t, store.Record(cmd))
	}

	require.Equal(t, []string{"git status", "git log"}, store.Search("git "))
	require.Equal(t, []string{"git status", "ls", "git log", "go build"}, store.Search(""))
	require.Nil(t, store.Search("docker"))
}

func TestLoadReplayEquivalence(t *testing.T) {
	dir := t.TempDir()
	commands := []string{"ls", "cd /tmp", "ls", "make", "ls", "cd /tmp"}

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	for _, cmd := range commands {
		require.NoError(t, first.Record(cmd))
	}

	reloaded, err := NewFileStore(dir)
	require.NoError(t, err)
	require.Equal(t, first.Entries(), reloaded.Entries())

	// Direct single-session insertion yields the same final state.
	direct := newTestStore(t)
	for _, cmd := range commands {
		require.NoError(t, direct.Record(cmd))
	}
	require.Equal(t, len(direct.Entries()), reloaded.Len())
	for i, e := range direct.Entries() {
		got := reloaded.Entries()[i]
		require.Equal(t, e.Command, got.Command)
		require.Equal(t, e.Frequency, got.Frequency)
		require.Equal(t, e.Hash, got.Hash)
	}
}

func TestLoadMissingFileIsEmptyHistory(t *testing.T) {
	store := newTestStore(t)
	require.Equal(t, 0, store.Len())
}
