package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/olsh/internal/domain"
)

// Renderer owns the terminal presentation: the input prompt, the assistant
// marker, and the post-stream stats line. Styling is dropped when stdout is
// not a terminal.
type Renderer struct {
	styled      bool
	promptStyle lipgloss.Style
	markerStyle lipgloss.Style
	dimStyle    lipgloss.Style
	errStyle    lipgloss.Style
}

// NewRenderer builds a renderer, detecting terminal capability from stdout.
func NewRenderer() *Renderer {
	styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &Renderer{
		styled:      styled,
		promptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		markerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		dimStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Prompt renders the input prompt for the current working directory.
func (r *Renderer) Prompt(cwd string) string {
	text := cwd + " olsh>"
	if !r.styled {
		return text + " "
	}
	return r.promptStyle.Render(text) + " "
}

// Marker renders the prefix applied to the first delta of a chat response.
func (r *Renderer) Marker() string {
	if !r.styled {
		return "assistant> "
	}
	return r.markerStyle.Render("assistant>") + " "
}

// Stats prints one dim line with token counters from a finished stream.
// Nothing is printed when the stream carried no counters.
func (r *Renderer) Stats(stats domain.StreamStats) {
	if !stats.HasCounters() {
		return
	}
	wall := time.Duration(stats.TotalDuration)
	line := fmt.Sprintf("%s tokens in %s", humanize.Comma(int64(stats.EvalCount)), wall.Round(time.Millisecond))
	if stats.EvalDuration > 0 {
		rate := float64(stats.EvalCount) / (float64(stats.EvalDuration) / float64(time.Second))
		line += fmt.Sprintf(" (%s tok/s)", humanize.CommafWithDigits(rate, 1))
	}
	if r.styled {
		line = r.dimStyle.Render(line)
	}
	fmt.Println(line)
}

// Errorf prints a user-facing error line.
func (r *Renderer) Errorf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if r.styled {
		line = r.errStyle.Render(line)
	}
	fmt.Fprintln(os.Stderr, line)
}
