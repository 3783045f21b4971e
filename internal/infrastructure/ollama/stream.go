package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/ports"
)

// Client streams completions from the daemon's generate endpoint. The
// response body is NDJSON: one inference step per line, with line boundaries
// independent of HTTP chunk boundaries.
type Client struct {
	baseURL string
	// No timeout: a generation request may legitimately run for minutes.
	httpClient *http.Client
}

// NewClient builds a streaming client against the daemon base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Generate implements ports.StreamClient. Non-empty response fields are
// emitted to w in decode order; the returned stats come from the last chunk
// that carried performance counters.
func (c *Client) Generate(ctx context.Context, model, prompt string, w domain.StreamWriter) (domain.StreamStats, error) {
	payload, err := json.Marshal(map[string]string{
		"model":  model,
		"prompt": prompt,
	})
	if err != nil {
		return domain.StreamStats{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return domain.StreamStats{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.StreamStats{}, &domain.NetworkError{Op: "generate request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.StreamStats{}, &domain.NetworkError{Op: "generate request", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	stats, err := decodeStream(resp.Body, w)
	if err != nil {
		return stats, err
	}
	w.Done()
	return stats, nil
}

// decodeStream reassembles NDJSON lines from arbitrary read boundaries.
// It keeps a growable byte accumulator: each read's bytes are appended, then
// every complete line is sliced off the front and decoded. A zero-byte read
// ends the loop unconditionally, so an unterminated trailing line is dropped.
// One malformed line aborts the whole call. The done field is not used for
// loop exit.
func decodeStream(r io.Reader, w domain.StreamWriter) (domain.StreamStats, error) {
	var (
		acc   []byte
		buf   [4096]byte
		stats domain.StreamStats
	)
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			acc = append(acc, buf[:n]...)
			for {
				nl := bytes.IndexByte(acc, '\n')
				if nl < 0 {
					break
				}
				line := acc[:nl]
				acc = acc[nl+1:]
				if err := decodeLine(line, w, &stats); err != nil {
					return stats, err
				}
			}
		}
		if n == 0 {
			if err != nil && err != io.EOF {
				return stats, &domain.NetworkError{Op: "read stream", Err: err}
			}
			return stats, nil
		}
		if err != nil {
			if err == io.EOF {
				return stats, nil
			}
			return stats, &domain.NetworkError{Op: "read stream", Err: err}
		}
	}
}

func decodeLine(line []byte, w domain.StreamWriter, stats *domain.StreamStats) error {
	var chunk domain.GenerateChunk
	if err := json.Unmarshal(line, &chunk); err != nil {
		return &domain.DecodeError{Line: append([]byte(nil), line...), Err: err}
	}
	if chunk.Response != "" {
		w.WriteChunk(chunk.Response)
	}
	if chunk.EvalCount > 0 || chunk.TotalDuration > 0 {
		stats.TotalDuration = chunk.TotalDuration
		stats.EvalCount = chunk.EvalCount
		stats.EvalDuration = chunk.EvalDuration
		stats.PromptEvalCount = chunk.PromptEvalCount
	}
	return nil
}

var _ ports.StreamClient = (*Client)(nil)
