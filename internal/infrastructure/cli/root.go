package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/olsh/internal/app"
	"github.com/doeshing/olsh/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The root runs the interactive
// loop; subcommands cover transcript inspection.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	var (
		noAutoStart bool
		model       string
		verbose     bool
	)

	root := &cobra.Command{
		Use:   "olsh",
		Short: "olsh - a shell with a local assistant",
		Long: "olsh is an interactive shell front-end. Plain lines run in your shell;\n" +
			"lines starting with the chat sigil go to a local Ollama model.",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), opts.Verbose || verbose)
			if err != nil {
				return err
			}
			defer container.Close()

			if model != "" {
				container.Config.Daemon.Model = model
			}

			if container.Config.Daemon.AutoStart && !noAutoStart {
				if err := container.Lifecycle.EnsureReady(cmd.Context(), container.Config.Daemon.Model); err != nil {
					if errors.Is(err, domain.ErrDaemonNotInstalled) {
						return fmt.Errorf("ollama is not installed (get it from https://ollama.com): %w", err)
					}
					return err
				}
			}

			repl := &REPL{
				Config:     container.Config,
				Facts:      container.Facts,
				Session:    container.Session,
				History:    container.History,
				Transcript: container.Transcript,
				Executor:   container.Executor,
				Chat:       container.Chat,
				Renderer:   NewRenderer(),
				Logger:     container.Logger,
			}
			return repl.Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVar(&noAutoStart, "no-autostart", false, "Do not probe or start the inference daemon on launch")
	root.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newHistoryCommand(ctx, opts))
	return root, nil
}

func newHistoryCommand(ctx context.Context, opts Options) *cobra.Command {
	var (
		limit  int
		search string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the execution transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), opts.Verbose)
			if err != nil {
				return err
			}
			defer container.Close()

			if container.Transcript == nil {
				return errors.New("transcript logging is disabled in config")
			}
			records, err := container.Transcript.Records(limit, search)
			if err != nil {
				return err
			}
			for _, rec := range records {
				ts := time.Unix(rec.Timestamp, 0).Format(time.RFC3339)
				fmt.Printf("%s  [%d]  %s  (%s)\n", ts, rec.ExitCode, rec.Command, rec.WorkingDir)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by substring")
	return cmd
}
