package domain

// HistoryEntry is one distinct command line seen by the REPL.
// Command and Hash never change after creation; Frequency and LastUsed are
// refreshed on every repeat.
type HistoryEntry struct {
	Command   string `json:"command"`
	Frequency int    `json:"frequency"`
	LastUsed  int64  `json:"last_used"`
	Hash      uint64 `json:"hash"`
}

// TranscriptRecord captures one executed shell command for the transcript log.
type TranscriptRecord struct {
	ID         string `json:"id"`
	Timestamp  int64  `json:"timestamp"`
	Command    string `json:"command"`
	ExitCode   int    `json:"exit_code"`
	DurationMS int64  `json:"duration_ms"`
	WorkingDir string `json:"working_dir"`
}
