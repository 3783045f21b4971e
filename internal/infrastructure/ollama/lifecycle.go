package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/ports"
)

// Manager drives the daemon through probe, optional spawn, readiness poll,
// and model-presence/pull. Single-threaded like the rest of the core; every
// call blocks until it resolves.
type Manager struct {
	baseURL string
	client  *http.Client
	logger  ports.Logger

	attempts int
	interval time.Duration

	state      domain.ServiceState
	readyModel string
	process    *exec.Cmd

	// Subprocess hooks, replaceable in tests.
	startDaemon func() (*exec.Cmd, error)
	pullModel   func(model string) error
}

// NewManager builds a Manager against the daemon base URL.
func NewManager(baseURL string, logger ports.Logger) *Manager {
	m := &Manager{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: domain.ProbeTimeout},
		logger:   logger,
		attempts: domain.ReadinessAttempts,
		interval: domain.ReadinessInterval,
		state:    domain.ServiceUnknown,
	}
	m.startDaemon = m.spawnServe
	m.pullModel = m.runPull
	return m
}

// State reports the last observed lifecycle state.
func (m *Manager) State() domain.ServiceState { return m.state }

// Process exposes the spawned daemon process, if any. On a readiness-poll
// timeout the process is left running and remains reachable here.
func (m *Manager) Process() *exec.Cmd { return m.process }

// EnsureReady implements ports.LifecycleManager. Failures are terminal for
// this invocation; there is no retry beyond the fixed readiness poll.
func (m *Manager) EnsureReady(ctx context.Context, model string) error {
	if m.state == domain.ServiceReady && model == m.readyModel {
		// Already brought up with this model: re-probe only.
		m.state = domain.ServiceProbing
		if m.Probe(ctx) {
			m.state = domain.ServiceReady
			return nil
		}
	}
	m.state = domain.ServiceProbing
	if !m.Probe(ctx) {
		m.state = domain.ServiceStarting
		proc, err := m.startDaemon()
		if err != nil {
			m.state = domain.ServiceFailed
			if errors.Is(err, exec.ErrNotFound) {
				return domain.ErrDaemonNotInstalled
			}
			return fmt.Errorf("start daemon: %w", err)
		}
		m.process = proc
		m.logger.Info("daemon spawned", map[string]interface{}{"pid": proc.Process.Pid})

		m.state = domain.ServicePolling
		if !m.poll(ctx) {
			// The spawned process is deliberately left running; it may still
			// finish starting in the background.
			m.state = domain.ServiceFailed
			return domain.ErrStartupTimeout
		}
	}

	if !m.modelPresent(ctx, model) {
		m.state = domain.ServiceDownloading
		m.logger.Info("pulling model", map[string]interface{}{"model": model})
		if err := m.pullModel(model); err != nil {
			m.state = domain.ServiceFailed
			return fmt.Errorf("%w: %v", domain.ErrModelDownload, err)
		}
	}

	m.state = domain.ServiceReady
	m.readyModel = model
	return nil
}

// Probe issues one bounded-timeout health request. It reports liveness as a
// boolean and never returns an error; connection refused, timeout, and
// non-200 all mean "not running".
func (m *Manager) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (m *Manager) poll(ctx context.Context) bool {
	for i := 0; i < m.attempts; i++ {
		if m.Probe(ctx) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(m.interval):
		}
	}
	return false
}

// modelPresent queries /api/show. Any non-success, network failure included,
// counts as "model absent" and triggers a pull attempt.
func (m *Manager) modelPresent(ctx context.Context, model string) bool {
	m.state = domain.ServiceModelMissing
	body, err := json.Marshal(map[string]string{"name": model})
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/show", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// spawnServe starts `ollama serve` detached; the child is not waited on.
func (m *Manager) spawnServe() (*exec.Cmd, error) {
	cmd := exec.Command("ollama", "serve")
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// runPull blocks on `ollama pull <model>` with inherited stdio so download
// progress stays visible.
func (m *Manager) runPull(model string) error {
	cmd := exec.Command("ollama", "pull", model)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

var _ ports.LifecycleManager = (*Manager)(nil)
