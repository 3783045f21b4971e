package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doeshing/olsh/internal/domain"
)

func TestGenerateStreamsDeltasFromServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "llama3.2", req["model"])
		require.Contains(t, req["prompt"], "Assistant:")

		flusher := w.(http.Flusher)
		for _, line := range []string{
			`{"model":"llama3.2","response":"4","done":false}`,
			`{"model":"llama3.2","response":"2","done":false}`,
			`{"model":"llama3.2","response":"","done":true,"eval_count":2,"eval_duration":100000000,"total_duration":200000000}`,
		} {
			_, _ = w.Write([]byte(line + "\n"))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	w := &recordingWriter{}
	stats, err := c.Generate(context.Background(), "llama3.2", "preamble\n\nquestion\n\nAssistant:", w)
	require.NoError(t, err)
	require.Equal(t, []string{"4", "2"}, w.chunks)
	require.True(t, w.done)
	require.Equal(t, 2, stats.EvalCount)
}

func TestGenerateAgainstClosedPortIsNetworkError(t *testing.T) {
	c := NewClient(closedServerURL(t))
	w := &recordingWriter{}

	_, err := c.Generate(context.Background(), "llama3.2", "hi", w)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Empty(t, w.chunks)
	require.False(t, w.done)
}

func TestGenerateNon200IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	w := &recordingWriter{}

	_, err := c.Generate(context.Background(), "llama3.2", "hi", w)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestGenerateDoesNotCallDoneOnDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{bad json\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	w := &recordingWriter{}

	_, err := c.Generate(context.Background(), "llama3.2", "hi", w)

	var decodeErr *domain.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.False(t, w.done)
}
