package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/ports"
)

// LocalExecutor runs commands through the host shell with POSIX -c syntax.
type LocalExecutor struct {
	shell string
}

// NewLocalExecutor builds a new executor; shell defaults to $SHELL, then
// /bin/sh.
func NewLocalExecutor(shell string) *LocalExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{shell: shell}
}

// Execute implements ports.CommandExecutor. A non-zero exit is not an error
// of the executor itself; it is reported through ExitCode.
func (e *LocalExecutor) Execute(ctx context.Context, command, cwd string, env []string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, e.shell, "-c", command)
	c.Dir = cwd
	c.Env = env

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	result := domain.ExecutionResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
