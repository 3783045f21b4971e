package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/olsh/internal/domain"
)

// markerSink writes streaming deltas to an io.Writer, prefixing the first
// non-empty delta of a call with a marker. Subsequent deltas are raw text.
type markerSink struct {
	out     io.Writer
	marker  string
	started bool
}

// NewMarkerSink builds a sink for one streaming call. Sinks are single-use:
// the marker fires once per sink.
func NewMarkerSink(out io.Writer, marker string) domain.StreamWriter {
	return &markerSink{out: out, marker: marker}
}

func (s *markerSink) WriteChunk(text string) {
	if text == "" {
		return
	}
	if !s.started {
		fmt.Fprint(s.out, s.marker)
		s.started = true
	}
	fmt.Fprint(s.out, text)
}

func (s *markerSink) Done() {
	if s.started {
		fmt.Fprintln(s.out)
	}
}
