// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends on these abstractions; the infrastructure
// layer supplies the adapters (HTTP clients, subprocesses, files, sqlite).
package ports

import (
	"context"

	"github.com/doeshing/olsh/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.olsh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// LifecycleManager drives the local inference daemon from unknown to ready
// with the required model present.
type LifecycleManager interface {
	// EnsureReady is idempotent; after a successful call a repeat with the
	// same model is a re-probe only.
	EnsureReady(ctx context.Context, model string) error
	// State reports the manager's last observed state.
	State() domain.ServiceState
}

// StreamClient issues a generation request and emits ordered text deltas to
// the writer as they are decoded.
type StreamClient interface {
	Generate(ctx context.Context, model, prompt string, w domain.StreamWriter) (domain.StreamStats, error)
}

// HistoryStore is the bounded, hash-deduplicated command history.
type HistoryStore interface {
	Record(command string) error
	Search(prefix string) []string
	Len() int
}

// TranscriptRepository logs executed commands for later inspection.
// Best-effort: callers log failures and move on.
type TranscriptRepository interface {
	Insert(rec domain.TranscriptRecord) error
	Records(limit int, search string) ([]domain.TranscriptRecord, error)
	Close() error
}

// CommandExecutor runs one shell line and captures its output and status.
// Shell selection (-c syntax or platform equivalent) is the adapter's concern.
type CommandExecutor interface {
	Execute(ctx context.Context, command, cwd string, env []string) (domain.ExecutionResult, error)
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
