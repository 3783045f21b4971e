package domain

// ExecutionResult captures one shell command run.
type ExecutionResult struct {
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
}
