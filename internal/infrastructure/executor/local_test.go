package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecuteCapturesStdout(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	result, err := e.Execute(context.Background(), "echo hello", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Fatalf("stdout = %q, want hello", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", result.ExitCode)
	}
}

func TestExecuteReportsNonZeroExitAsResult(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	result, err := e.Execute(context.Background(), "exit 3", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("a failing command is not an executor error, got %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", result.ExitCode)
	}
}

func TestExecuteCapturesStderr(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	result, err := e.Execute(context.Background(), "echo oops 1>&2", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(result.Stderr) != "oops" {
		t.Fatalf("stderr = %q, want oops", result.Stderr)
	}
}
