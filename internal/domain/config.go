package domain

// Config is the persisted user configuration, loaded from
// ~/.olsh/config.yaml (overridable via OLSH_CONFIG).
type Config struct {
	ConfigFormatVersion string     `yaml:"config_format_version"`
	Daemon              Daemon     `yaml:"daemon"`
	REPL                REPLConfig `yaml:"repl"`
}

// Daemon configures the local inference daemon connection and startup.
type Daemon struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	AutoStart bool   `yaml:"auto_start"`
}

// REPLConfig configures the interactive loop.
type REPLConfig struct {
	ChatSigil  string `yaml:"chat_sigil"`
	Transcript bool   `yaml:"transcript"`
}
