package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultFromEmbedded(t *testing.T) {
	cfg := NewDefaultFromEmbedded()
	require.NotNil(t, cfg)

	assert.Equal(t, "ollama", cfg.Transport)

	t.Run("Translation", func(t *testing.T) {
		assert.Equal(t, "To jest prosty test tłumaczenia.", cfg.Translation.Text)
		assert.Equal(t, "pl", cfg.Translation.Source)
		assert.Equal(t, "en", cfg.Translation.Target)
		assert.Empty(t, cfg.Translation.Model)
		assert.Equal(t, "default", cfg.Translation.Style)
	})

	t.Run("Parameters", func(t *testing.T) {
		assert.Equal(t, 0.2, cfg.Parameters.Temperature)
		assert.Equal(t, 128, cfg.Parameters.MaxTokens)
		assert.Equal(t, 120, cfg.Parameters.Timeout)
		assert.Zero(t, cfg.Parameters.TopP)
		assert.Zero(t, cfg.Parameters.TopK)
		assert.Nil(t, cfg.Parameters.Seed)
		assert.Empty(t, cfg.Parameters.Stop)
	})

	t.Run("Transports", func(t *testing.T) {
		assert.Equal(t, "http://127.0.0.1:11434", cfg.Ollama.Host)
		assert.Equal(t, "translategemma:4b", cfg.Ollama.Model)
		assert.Equal(t, "google/translategemma-4b-it", cfg.Local.Model)
		assert.Equal(t, "auto", cfg.Local.Device)
		assert.Equal(t, "https://huggingface.co", cfg.Local.RegistryURL)
	})

	assert.NoError(t, cfg.Validate())
}

func TestManager_Load_Defaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("HF_TOKEN", "")

	m := NewManager()
	require.NoError(t, m.Load())

	cfg := m.Config()
	assert.Equal(t, "ollama", cfg.Transport)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Ollama.Host)
	assert.Nil(t, cfg.Parameters.Seed)
}

func TestManager_Load_Environment(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("HF_TOKEN", "hf_secret")
	t.Setenv("BABEL_PARAMETERS_TIMEOUT", "7")

	m := NewManager()
	require.NoError(t, m.Load())

	cfg := m.Config()
	assert.Equal(t, "http://gpu-box:11434", cfg.Ollama.Host)
	assert.Equal(t, "hf_secret", cfg.Local.Token)
	assert.Equal(t, 7, cfg.Parameters.Timeout)
}

func newTestFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "http://flag-default:11434", "")
	flags.String("model", "", "")
	flags.Int("max-new-tokens", 64, "")
	flags.Int("seed", 0, "")
	flags.StringSlice("stop", nil, "")
	return flags
}

var testBindings = map[string]string{
	"host":           "ollama.host",
	"model":          "translation.model",
	"max-new-tokens": "parameters.max_tokens",
	"seed":           "parameters.seed",
	"stop":           "parameters.stop",
}

func TestManager_BindFlags(t *testing.T) {
	t.Run("unset flags keep embedded defaults", func(t *testing.T) {
		t.Setenv("OLLAMA_HOST", "")

		flags := newTestFlags()
		require.NoError(t, flags.Parse([]string{}))

		m := NewManager()
		require.NoError(t, m.BindFlags(flags, testBindings))
		require.NoError(t, m.Load())

		assert.Equal(t, "http://127.0.0.1:11434", m.Config().Ollama.Host)
		assert.Equal(t, 128, m.Config().Parameters.MaxTokens)
		assert.Empty(t, m.Config().Parameters.Stop)
	})

	t.Run("explicit flags win over environment", func(t *testing.T) {
		t.Setenv("OLLAMA_HOST", "http://from-env:11434")

		flags := newTestFlags()
		require.NoError(t, flags.Parse([]string{"--host", "http://from-flag:1", "--max-new-tokens", "32", "--model", "gemma3:1b", "--seed", "42", "--stop", "<end_of_turn>,###"}))

		m := NewManager()
		require.NoError(t, m.BindFlags(flags, testBindings))
		require.NoError(t, m.Load())

		cfg := m.Config()
		assert.Equal(t, "http://from-flag:1", cfg.Ollama.Host)
		assert.Equal(t, 32, cfg.Parameters.MaxTokens)
		assert.Equal(t, "gemma3:1b", cfg.ModelFor("ollama"))
		require.NotNil(t, cfg.Parameters.Seed)
		assert.Equal(t, 42, *cfg.Parameters.Seed)
		assert.Equal(t, []string{"<end_of_turn>", "###"}, cfg.Parameters.Stop)
	})

	t.Run("unknown flag", func(t *testing.T) {
		m := NewManager()
		err := m.BindFlags(newTestFlags(), map[string]string{"nope": "x"})
		assert.ErrorContains(t, err, `unknown flag "nope"`)
	})
}

func TestManagers_AreIndependent(t *testing.T) {
	first := NewManager()
	first.Viper().Set("translation.target", "de")
	require.NoError(t, first.Load())

	second := NewManager()
	require.NoError(t, second.Load())

	assert.Equal(t, "de", first.Config().Translation.Target)
	assert.Equal(t, "en", second.Config().Translation.Target)
}

func TestConfig_ModelFor(t *testing.T) {
	cfg := NewDefaultFromEmbedded()

	assert.Equal(t, "translategemma:4b", cfg.ModelFor("ollama"))
	assert.Equal(t, "google/translategemma-4b-it", cfg.ModelFor("local"))
	assert.Empty(t, cfg.ModelFor("mock"))

	cfg.Translation.Model = "custom"
	assert.Equal(t, "custom", cfg.ModelFor("ollama"))
	assert.Equal(t, "custom", cfg.ModelFor("local"))
}

func TestParameters_SamplingOptions(t *testing.T) {
	p := Parameters{Temperature: 0.2, MaxTokens: 128}
	assert.Equal(t, map[string]float64{"temperature": 0.2, "max_tokens": 128}, p.SamplingOptions())

	seed := 7
	p = Parameters{Temperature: 0, MaxTokens: 64, TopP: 0.9, TopK: 40, RepeatPenalty: 1.1, Seed: &seed}
	assert.Equal(t, map[string]float64{
		"temperature":    0,
		"max_tokens":     64,
		"top_p":          0.9,
		"top_k":          40,
		"repeat_penalty": 1.1,
		"seed":           7,
	}, p.SamplingOptions())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty text is allowed", mutate: func(c *Config) { c.Translation.Text = "" }},
		{name: "missing transport", mutate: func(c *Config) { c.Transport = "" }, errorContains: "transport must be set"},
		{name: "missing source", mutate: func(c *Config) { c.Translation.Source = "" }, errorContains: "source language"},
		{name: "missing target", mutate: func(c *Config) { c.Translation.Target = "" }, errorContains: "target language"},
		{name: "missing model", mutate: func(c *Config) { c.Ollama.Model = "" }, errorContains: "no model configured"},
		{name: "mock needs no model", mutate: func(c *Config) { c.Transport = "mock"; c.Ollama.Model = "" }},
		{name: "zero max tokens", mutate: func(c *Config) { c.Parameters.MaxTokens = 0 }, errorContains: "max new tokens"},
		{name: "zero timeout", mutate: func(c *Config) { c.Parameters.Timeout = 0 }, errorContains: "timeout"},
		{name: "temperature too high", mutate: func(c *Config) { c.Parameters.Temperature = 2.5 }, errorContains: "temperature"},
		{name: "top-p too high", mutate: func(c *Config) { c.Parameters.TopP = 1.5 }, errorContains: "top-p"},
		{name: "negative top-k", mutate: func(c *Config) { c.Parameters.TopK = -1 }, errorContains: "top-k"},
		{name: "negative repeat penalty", mutate: func(c *Config) { c.Parameters.RepeatPenalty = -0.1 }, errorContains: "repeat penalty"},
		{name: "missing host", mutate: func(c *Config) { c.Ollama.Host = "" }, errorContains: "ollama host"},
		{name: "local ignores host", mutate: func(c *Config) { c.Transport = "local"; c.Ollama.Host = "" }},
		{name: "stop sequences", mutate: func(c *Config) { c.Parameters.Stop = []string{"<end_of_turn>"} }},
		{name: "empty stop sequence", mutate: func(c *Config) { c.Parameters.Stop = []string{"###", ""} }, errorContains: "stop sequences must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultFromEmbedded()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errorContains)
			}
		})
	}
}
