package domain

import (
	"errors"
	"fmt"
)

// Failure sentinels for the daemon lifecycle. Every lifecycle failure is
// terminal for the calling invocation; the caller decides whether to abort
// the whole process.
var (
	// ErrDaemonNotInstalled means the daemon executable could not be found.
	ErrDaemonNotInstalled = errors.New("inference daemon executable not found")
	// ErrStartupTimeout means the readiness poll was exhausted. The spawned
	// daemon process is left running.
	ErrStartupTimeout = errors.New("inference daemon did not become ready in time")
	// ErrModelDownload means the model pull subprocess exited non-zero.
	ErrModelDownload = errors.New("model download failed")
)

// DecodeError reports a malformed NDJSON line. It is fatal for the whole
// streaming call.
type DecodeError struct {
	Line []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode stream line %q: %v", string(e.Line), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure during a request other than
// the initial probe (which returns a boolean instead).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
