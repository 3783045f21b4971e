package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// HistoryFilePermissions is the permission for the history file (rw-r--r--)
	HistoryFilePermissions = 0o644
)

// History constants
const (
	// HistoryCap bounds the command history store; the oldest-inserted entry
	// is evicted when a new distinct command pushes the count past the cap.
	HistoryCap = 100
	// HistoryFileName is the persisted history file under the config dir.
	HistoryFileName = "history.json"
)

// Daemon lifecycle constants
const (
	// ProbeTimeout bounds a single health probe request.
	ProbeTimeout = 2 * time.Second
	// ReadinessAttempts is the number of health polls after spawning the daemon.
	ReadinessAttempts = 30
	// ReadinessInterval is the pause between readiness polls.
	ReadinessInterval = time.Second
)

// Defaults hydrated into a fresh config.
const (
	DefaultBaseURL   = "http://localhost:11434"
	DefaultModel     = "llama3.2"
	DefaultChatSigil = ":"
)
