package history

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/ports"
)

// FileStore is a bounded, hash-deduplicated command history persisted as a
// JSON array in history.json. Entries keep insertion order; a hash→index map
// provides O(1) dedup lookup. The map is rebuilt whenever an eviction shifts
// indices.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entries []domain.HistoryEntry
	index   map[uint64]int
	now     func() time.Time
}

// NewFileStore creates a store backed by <dir>/history.json and loads any
// existing entries. A missing file is not an error.
func NewFileStore(dir string) (*FileStore, error) {
	s := &FileStore{
		path:  filepath.Join(dir, domain.HistoryFileName),
		index: map[uint64]int{},
		now:   time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Record registers one command. A repeat of a known command increments its
// frequency and refreshes its timestamp in place; a new command is appended,
// evicting the oldest-inserted entry when the cap is exceeded. Either way the
// full entry slice is persisted before returning.
func (s *FileStore) Record(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(command)
	return s.persist()
}

func (s *FileStore) record(command string) {
	h := hashCommand(command)
	ts := s.now().Unix()

	if i, ok := s.index[h]; ok {
		s.entries[i].Frequency++
		s.entries[i].LastUsed = ts
		return
	}

	s.entries = append(s.entries, domain.HistoryEntry{
		Command:   command,
		Frequency: 1,
		LastUsed:  ts,
		Hash:      h,
	})
	if len(s.entries) > domain.HistoryCap {
		// Oldest-inserted goes first, not least-recently-used. Every index
		// shifts down by one, so the lookup map is rebuilt from scratch.
		s.entries = s.entries[1:]
		s.rebuildIndex()
		return
	}
	s.index[h] = len(s.entries) - 1
}

// Search returns commands with the given prefix, in insertion order.
func (s *FileStore) Search(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.entries {
		if strings.HasPrefix(e.Command, prefix) {
			out = append(out, e.Command)
		}
	}
	return out
}

// Len reports the entry count.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a copy of the current entries in insertion order.
func (s *FileStore) Entries() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) rebuildIndex() {
	s.index = make(map[uint64]int, len(s.entries))
	for i, e := range s.entries {
		s.index[e.Hash] = i
	}
}

// load replays each persisted command through record, reconstructing
// frequencies and order. Quadratic in the worst case, acceptable with the
// cap at 100.
func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	var persisted []domain.HistoryEntry
	if err := json.Unmarshal(data, &persisted); err != nil {
		return err
	}
	for _, e := range persisted {
		for n := 0; n < e.Frequency; n++ {
			s.record(e.Command)
		}
		// Replay stamps entries with load time; restore the stored one.
		if i, ok := s.index[e.Hash]; ok {
			s.entries[i].LastUsed = e.LastUsed
		}
	}
	return nil
}

// persist overwrites the backing file with the full entry slice. O(n) per
// call, capped by HistoryCap.
func (s *FileStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, domain.HistoryFilePermissions)
}

func hashCommand(command string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(command))
	return h.Sum64()
}

var _ ports.HistoryStore = (*FileStore)(nil)
