package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/olsh/internal/domain"
	"github.com/doeshing/olsh/internal/ports"
)

// FileLoader loads YAML configuration from ~/.olsh/config.yaml (overridable
// via OLSH_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Dir returns the directory holding config and history files.
func (l *FileLoader) Dir() string {
	return filepath.Dir(l.resolvePath())
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("OLSH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".olsh", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Daemon: domain.Daemon{
			BaseURL:   domain.DefaultBaseURL,
			Model:     domain.DefaultModel,
			AutoStart: true,
		},
		REPL: domain.REPLConfig{
			ChatSigil:  domain.DefaultChatSigil,
			Transcript: true,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Daemon.BaseURL == "" {
		cfg.Daemon.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Daemon.Model == "" {
		cfg.Daemon.Model = domain.DefaultModel
	}
	if cfg.REPL.ChatSigil == "" {
		cfg.REPL.ChatSigil = domain.DefaultChatSigil
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
