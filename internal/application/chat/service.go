package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/infrastructure/session"
	"github.com/doeshing/olsh/internal/ports"
)

const preamble = "You are a helpful assistant embedded in an interactive shell. " +
	"Answer the user's question concisely, using the host and session details below when relevant."

// Service runs one chat turn: assemble the prompt, stream the response.
type Service struct {
	Client ports.StreamClient
	Facts  domain.FactBag
	Logger ports.Logger
}

// Run streams one answer for the given query. Session state is read for
// prompt assembly only; it is never mutated here.
func (s *Service) Run(ctx context.Context, model, query string, sess *session.State, w domain.StreamWriter) (domain.StreamStats, error) {
	prompt := BuildPrompt(s.Facts, sess, query)
	s.Logger.Debug("chat prompt assembled", map[string]interface{}{
		"model": model,
		"bytes": len(prompt),
	})
	return s.Client.Generate(ctx, model, prompt, w)
}

// BuildPrompt is pure and deterministic: preamble, host facts, session state,
// and the literal user query, in that exact order, separated by blank lines,
// ending with the assistant cue and nothing after it.
func BuildPrompt(facts domain.FactBag, sess *session.State, query string) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\n")

	b.WriteString("Host:\n")
	b.WriteString("OS: " + facts.OSName() + "\n")
	b.WriteString("Arch: " + facts.Arch() + "\n")
	b.WriteString("Shell: " + facts.ShellPath() + "\n")
	b.WriteString("CPUs: " + strconv.Itoa(facts.CPUCount()) + "\n")
	b.WriteString("Hostname: " + facts.Hostname() + "\n")
	b.WriteString("User: " + facts.Username() + "\n")
	b.WriteString("\n")

	b.WriteString("Session:\n")
	b.WriteString("Working directory: " + sess.Cwd() + "\n")
	if last, ok := sess.LastCommand(); ok {
		b.WriteString("Last command: " + last + "\n")
	}
	if status, ok := sess.LastStatus(); ok {
		b.WriteString(fmt.Sprintf("Last exit status: %d\n", status))
	}
	b.WriteString("\n")

	b.WriteString(query)
	b.WriteString("\n\nAssistant:")

	return b.String()
}
