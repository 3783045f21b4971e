package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/doeshing/olsh/internal/application/chat"
	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/infrastructure/session"
	"github.com/doeshing/olsh/internal/ports"
)

// REPL reads one line at a time and routes it to chat, a meta command, or
// the shell. At most one chat stream or one shell command is in flight at a
// time; every call blocks.
type REPL struct {
	Config     domain.Config
	Facts      domain.FactBag
	Session    *session.State
	History    ports.HistoryStore
	Transcript ports.TranscriptRepository
	Executor   ports.CommandExecutor
	Chat       *chat.Service
	Renderer   *Renderer
	Logger     ports.Logger

	in  io.Reader
	out io.Writer
}

// Run loops until quit/exit or EOF on stdin. Per-line failures surface a
// message and continue; only explicit quit ends the loop.
func (r *REPL) Run(ctx context.Context) error {
	if r.in == nil {
		r.in = os.Stdin
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	metaSigil := r.Config.REPL.ChatSigil + r.Config.REPL.ChatSigil

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, r.Renderer.Prompt(r.Session.Cwd()))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Fprintln(r.out)
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, metaSigil):
			if quit := r.runMeta(strings.TrimSpace(strings.TrimPrefix(line, metaSigil))); quit {
				return nil
			}
		case strings.HasPrefix(line, r.Config.REPL.ChatSigil):
			r.runChat(ctx, strings.TrimSpace(strings.TrimPrefix(line, r.Config.REPL.ChatSigil)))
		default:
			r.runShell(ctx, line)
		}
	}
}

// runMeta handles doubled-sigil commands. Returns true on quit.
func (r *REPL) runMeta(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	switch name {
	case "quit", "exit":
		return true
	case "help", "":
		r.printHelp()
	case "history":
		for _, cmd := range r.History.Search(strings.TrimSpace(arg)) {
			fmt.Fprintln(r.out, cmd)
		}
	case "facts":
		r.printFacts()
	default:
		fmt.Fprintf(r.out, "unknown command %q\n", name)
		r.printHelp()
	}
	return false
}

func (r *REPL) runChat(ctx context.Context, query string) {
	if query == "" {
		return
	}
	sink := NewMarkerSink(r.out, r.Renderer.Marker())
	stats, err := r.Chat.Run(ctx, r.Config.Daemon.Model, query, r.Session, sink)
	if err != nil {
		var decodeErr *domain.DecodeError
		switch {
		case errors.As(err, &decodeErr):
			r.Renderer.Errorf("response stream corrupted: %v", err)
		default:
			r.Renderer.Errorf("chat failed: %v", err)
		}
		return
	}
	r.Renderer.Stats(stats)
}

func (r *REPL) runShell(ctx context.Context, line string) {
	// cd mutates the session rather than a throwaway subshell.
	if line == "cd" || strings.HasPrefix(line, "cd ") {
		r.changeDirectory(strings.TrimSpace(strings.TrimPrefix(line, "cd")))
		return
	}

	start := time.Now()
	result, err := r.Executor.Execute(ctx, line, r.Session.Cwd(), r.Session.Environ())
	if err != nil {
		r.Renderer.Errorf("run command: %v", err)
		return
	}

	// The command's own output and status are not assistant errors.
	if result.Stdout != "" {
		fmt.Fprint(r.out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(os.Stderr, result.Stderr)
	}
	if result.ExitCode != 0 {
		fmt.Fprintf(r.out, "exit status %d\n", result.ExitCode)
	}

	r.Session.UpdateAfterCommand(line, result.ExitCode)
	if err := r.History.Record(line); err != nil {
		r.Logger.Warn("history record failed", map[string]interface{}{"error": err.Error()})
	}
	if r.Transcript != nil {
		rec := domain.TranscriptRecord{
			Timestamp:  start.Unix(),
			Command:    line,
			ExitCode:   result.ExitCode,
			DurationMS: result.DurationMS,
			WorkingDir: r.Session.Cwd(),
		}
		if err := r.Transcript.Insert(rec); err != nil {
			r.Logger.Warn("transcript insert failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (r *REPL) changeDirectory(path string) {
	if path == "" {
		path = os.Getenv("HOME")
	}
	if err := r.Session.ChangeDirectory(path); err != nil {
		r.Renderer.Errorf("cd: %v", err)
		r.Session.UpdateAfterCommand("cd "+path, 1)
		return
	}
	r.Session.UpdateAfterCommand("cd "+path, 0)
	if err := r.History.Record("cd " + path); err != nil {
		r.Logger.Warn("history record failed", map[string]interface{}{"error": err.Error()})
	}
}

func (r *REPL) printHelp() {
	sigil := r.Config.REPL.ChatSigil
	fmt.Fprintf(r.out, "%s<question>        ask the assistant\n", sigil)
	fmt.Fprintf(r.out, "%s%shelp            this help\n", sigil, sigil)
	fmt.Fprintf(r.out, "%s%shistory [pfx]   show command history\n", sigil, sigil)
	fmt.Fprintf(r.out, "%s%sfacts           show host facts\n", sigil, sigil)
	fmt.Fprintf(r.out, "%s%squit            leave olsh\n", sigil, sigil)
	fmt.Fprintln(r.out, "anything else runs in your shell")
}

func (r *REPL) printFacts() {
	f := r.Facts
	fmt.Fprintf(r.out, "OS: %s\n", f.OSName())
	fmt.Fprintf(r.out, "Arch: %s\n", f.Arch())
	fmt.Fprintf(r.out, "Shell: %s\n", f.ShellPath())
	fmt.Fprintf(r.out, "CPUs: %d\n", f.CPUCount())
	fmt.Fprintf(r.out, "Hostname: %s\n", f.Hostname())
	fmt.Fprintf(r.out, "User: %s\n", f.Username())
}
