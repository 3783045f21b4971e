package session

import (
	"fmt"
	"os"
	"strings"
)

// State is the mutable per-process session record: working directory, last
// executed command, last exit status, and the process environment. Owned by
// the REPL and passed by handle; single-threaded access by design.
type State struct {
	cwd         string
	lastCommand string
	lastStatus  int
	hasLast     bool
	env         map[string]string
}

// NewFromProcess snapshots the current process environment.
func NewFromProcess() (*State, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return &State{cwd: wd, env: env}, nil
}

// Cwd returns the current working directory. It always reflects the real
// directory: it is updated after every successful directory change and never
// after a failed one.
func (s *State) Cwd() string { return s.cwd }

// LastCommand returns the last executed command, if any.
func (s *State) LastCommand() (string, bool) {
	return s.lastCommand, s.hasLast
}

// LastStatus returns the last exit status, if any command has run.
func (s *State) LastStatus() (int, bool) {
	if !s.hasLast {
		return 0, false
	}
	return s.lastStatus, true
}

// Environ renders the environment as KEY=VALUE pairs for subprocess use.
func (s *State) Environ() []string {
	out := make([]string, 0, len(s.env))
	for k, v := range s.env {
		out = append(out, k+"="+v)
	}
	return out
}

// UpdateAfterCommand records the command and its exit status.
func (s *State) UpdateAfterCommand(command string, exitStatus int) {
	s.lastCommand = command
	s.lastStatus = exitStatus
	s.hasLast = true
}

// ChangeDirectory switches the process working directory. The new cwd is
// committed only when the chdir succeeds.
func (s *State) ChangeDirectory(path string) error {
	if err := os.Chdir(path); err != nil {
		return fmt.Errorf("change directory: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	s.cwd = wd
	s.env["PWD"] = wd
	return nil
}
