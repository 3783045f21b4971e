package domain

// GenerateChunk is one decoded NDJSON line from the generation stream.
// Everything beyond Response and Done is optional metadata; decoding must not
// fail when unknown fields are present or known optional fields are absent.
type GenerateChunk struct {
	Model              string `json:"model"`
	CreatedAt          string `json:"created_at"`
	Response           string `json:"response"`
	Done               bool   `json:"done"`
	DoneReason         string `json:"done_reason,omitempty"`
	Context            []int  `json:"context,omitempty"`
	TotalDuration      int64  `json:"total_duration,omitempty"`
	LoadDuration       int64  `json:"load_duration,omitempty"`
	PromptEvalCount    int    `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64  `json:"prompt_eval_duration,omitempty"`
	EvalCount          int    `json:"eval_count,omitempty"`
	EvalDuration       int64  `json:"eval_duration,omitempty"`
}

// StreamStats carries the performance counters of the final metadata-bearing
// chunk of a generation stream. Zero-valued when the stream ended without one.
type StreamStats struct {
	TotalDuration   int64
	EvalCount       int
	EvalDuration    int64
	PromptEvalCount int
}

// HasCounters reports whether the stream delivered any performance counters.
func (s StreamStats) HasCounters() bool {
	return s.EvalCount > 0 || s.TotalDuration > 0
}

// StreamWriter receives ordered text deltas as they are decoded.
// The distinction between the first delta of a call and the rest (for example
// a leading marker) is the writer's concern, not the decoder's.
type StreamWriter interface {
	WriteChunk(text string)
	Done()
}
