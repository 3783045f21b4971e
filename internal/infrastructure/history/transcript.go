package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/ports"
)

// TranscriptStore logs executed commands to a SQLite database. Best-effort:
// a store that failed to open degrades to a no-op rather than breaking the
// REPL.
type TranscriptStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewTranscriptStore creates (or opens) <dir>/transcript.db.
func NewTranscriptStore(dir string) *TranscriptStore {
	path := filepath.Join(dir, "transcript.db")
	_ = os.MkdirAll(dir, domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &TranscriptStore{path: path}
	}
	store := &TranscriptStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &TranscriptStore{path: path}
	}
	return store
}

func (s *TranscriptStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcript (
		id TEXT PRIMARY KEY,
		timestamp INTEGER,
		command TEXT,
		exit_code INTEGER,
		duration_ms INTEGER,
		working_dir TEXT
	);`)
	return err
}

// Insert logs one executed command. A missing ID is filled in.
func (s *TranscriptStore) Insert(rec domain.TranscriptRecord) error {
	if s.db == nil {
		return nil
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO transcript
		(id, timestamp, command, exit_code, duration_ms, working_dir)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp, rec.Command, rec.ExitCode, rec.DurationMS, rec.WorkingDir,
	)
	return err
}

// Records returns logged commands, newest first (limit/search optional).
func (s *TranscriptStore) Records(limit int, search string) ([]domain.TranscriptRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, command, exit_code, duration_ms, working_dir FROM transcript")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE command LIKE ?")
		args = append(args, "%"+search+"%")
	}
	builder.WriteString(" ORDER BY timestamp DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.TranscriptRecord
	for rows.Next() {
		var rec domain.TranscriptRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Command, &rec.ExitCode, &rec.DurationMS, &rec.WorkingDir); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *TranscriptStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the sqlite database path.
func (s *TranscriptStore) Path() string { return s.path }

var _ ports.TranscriptRepository = (*TranscriptStore)(nil)
