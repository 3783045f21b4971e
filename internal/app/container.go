package app

import (
	"context"

	"github.com/doeshing/olsh/internal/application/chat"
	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/infrastructure/config"
	"github.com/doeshing/olsh/internal/infrastructure/executor"
	"github.com/doeshing/olsh/internal/infrastructure/facts"
	"github.com/doeshing/olsh/internal/infrastructure/history"
	"github.com/doeshing/olsh/internal/infrastructure/ollama"
	"github.com/doeshing/olsh/internal/infrastructure/session"
	"github.com/doeshing/olsh/internal/pkg/logger"
	"github.com/doeshing/olsh/internal/ports"
)

// Container wires up application services with infrastructure adapters.
// Everything is constructed once at process entry and passed by handle; no
// ambient singletons. The CLI layer attaches its own adapters (renderer,
// sinks) on top.
type Container struct {
	Config     domain.Config
	Facts      domain.FactBag
	Session    *session.State
	History    *history.FileStore
	Transcript ports.TranscriptRepository
	Lifecycle  ports.LifecycleManager
	Executor   ports.CommandExecutor
	Chat       *chat.Service
	Logger     ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	factBag := facts.Collect()

	sess, err := session.NewFromProcess()
	if err != nil {
		return nil, err
	}

	historyStore, err := history.NewFileStore(cfgLoader.Dir())
	if err != nil {
		return nil, err
	}

	var transcript ports.TranscriptRepository
	if cfg.REPL.Transcript {
		transcript = history.NewTranscriptStore(cfgLoader.Dir())
	}

	chatService := &chat.Service{
		Client: ollama.NewClient(cfg.Daemon.BaseURL),
		Facts:  factBag,
		Logger: log,
	}

	return &Container{
		Config:     cfg,
		Facts:      factBag,
		Session:    sess,
		History:    historyStore,
		Transcript: transcript,
		Lifecycle:  ollama.NewManager(cfg.Daemon.BaseURL, log),
		Executor:   executor.NewLocalExecutor(factBag.ShellPath()),
		Chat:       chatService,
		Logger:     log,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() {
	if c.Transcript != nil {
		_ = c.Transcript.Close()
	}
}
