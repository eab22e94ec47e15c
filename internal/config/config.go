package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//go:embed data/defaults.toml
var defaultConfigTOML string

// EnvPrefix namespaces the automatic environment overrides (BABEL_PARAMETERS_TIMEOUT, ...)
const EnvPrefix = "BABEL"

// Manager resolves configuration from embedded defaults, environment and flags
// each Manager owns its own viper instance so no settings leak between runs
type Manager struct {
	v      *viper.Viper
	cfg    *Config
	logger *slog.Logger
}

// NewManager creates a new configuration manager with environment bindings
func NewManager() *Manager {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// well-known variables used by the model registry and the Ollama CLI
	_ = v.BindEnv("local.token", "HF_TOKEN")
	_ = v.BindEnv("ollama.host", "OLLAMA_HOST")

	return &Manager{
		v:   v,
		cfg: &Config{},
	}
}

// WithLogger sets the logger for the configuration manager
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	m.logger = logger
	return m
}

// BindFlags binds each named flag to its viper key
// flags that were not set on the command line fall back to the embedded defaults
func (m *Manager) BindFlags(flags *pflag.FlagSet, bindings map[string]string) error {
	for flagName, key := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			return fmt.Errorf("unknown flag %q", flagName)
		}
		if err := m.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}
	return nil
}

// Load reads the embedded defaults and resolves the final configuration
func (m *Manager) Load() error {
	m.v.SetConfigType("toml")

	if err := m.v.ReadConfig(strings.NewReader(defaultConfigTOML)); err != nil {
		return fmt.Errorf("failed to load embedded defaults: %w", err)
	}

	cfg := &Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	m.cfg = cfg

	m.postProcessConfig()

	if m.logger != nil {
		m.logger.Debug("Configuration resolved",
			"transport", m.cfg.Transport,
			"source", m.cfg.Translation.Source,
			"target", m.cfg.Translation.Target,
			"model", m.cfg.ModelFor(m.cfg.Transport),
			"ollama_host", m.cfg.Ollama.Host,
			"hf_token_set", m.cfg.Local.Token != "")
	}

	return nil
}

// Config returns the current configuration
func (m *Manager) Config() *Config {
	return m.cfg
}

// Viper returns the underlying Viper instance
func (m *Manager) Viper() *viper.Viper {
	return m.v
}

// NewDefaultFromEmbedded creates a Config populated from the embedded TOML only
// note we're primarily using this for testing
func NewDefaultFromEmbedded() *Config {
	v := viper.New()
	v.SetConfigType("toml")

	if err := v.ReadConfig(strings.NewReader(defaultConfigTOML)); err != nil {
		panic(fmt.Sprintf("failed to load embedded defaults in test helper: %v", err))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal embedded config in test helper: %v", err))
	}
	cfg.Parameters.Seed = nil

	return cfg
}

// postProcessConfig handles special processing after configuration loading
func (m *Manager) postProcessConfig() {
	// seed 0 means no seed
	if m.v.IsSet("parameters.seed") {
		seedValue := m.v.GetInt("parameters.seed")
		if seedValue == 0 {
			m.cfg.Parameters.Seed = nil
		} else {
			m.cfg.Parameters.Seed = &seedValue
		}
	}
}
