package config

import "fmt"

// Config represents the complete settings for one translation run
type Config struct {
	Transport   string      `mapstructure:"transport"`
	Translation Translation `mapstructure:"translation"`
	Parameters  Parameters  `mapstructure:"parameters"`
	Ollama      Ollama      `mapstructure:"ollama"`
	Local       Local       `mapstructure:"local"`
}

// Translation holds what to translate and with which model
type Translation struct {
	Text   string `mapstructure:"text"`
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
	Model  string `mapstructure:"model"`
	Style  string `mapstructure:"style"` // system prompt preset: "default" or "playful"
}

// Parameters contains generation parameters and request behavior
type Parameters struct {
	SystemPrompt  string   `mapstructure:"system_prompt"`
	Temperature   float64  `mapstructure:"temperature"`
	MaxTokens     int      `mapstructure:"max_tokens"`
	TopP          float64  `mapstructure:"top_p"`          // 0 = not sent
	TopK          int      `mapstructure:"top_k"`          // 0 = not sent
	RepeatPenalty float64  `mapstructure:"repeat_penalty"` // 0 = not sent
	Seed          *int     `mapstructure:"seed"`           // nil = not sent
	Stop          []string `mapstructure:"stop"`           // empty = not sent

	Timeout int `mapstructure:"timeout"` // seconds
}

// Ollama configures the remote chat-completion endpoint
type Ollama struct {
	Host  string `mapstructure:"host"`
	Model string `mapstructure:"model"`
}

// Local configures in-process inference
type Local struct {
	Model       string `mapstructure:"model"`
	Token       string `mapstructure:"token"`
	Device      string `mapstructure:"device"` // auto, cuda, mps or cpu
	Engine      string `mapstructure:"engine"`
	RegistryURL string `mapstructure:"registry_url"`
}

// ModelFor returns the model for the given transport, preferring an explicit model
func (c *Config) ModelFor(transport string) string {
	if c.Translation.Model != "" {
		return c.Translation.Model
	}
	switch transport {
	case "ollama":
		return c.Ollama.Model
	case "local":
		return c.Local.Model
	}
	return ""
}

// SamplingOptions returns the numeric generation settings that will be sent
// optional parameters left at zero are omitted
func (p Parameters) SamplingOptions() map[string]float64 {
	opts := map[string]float64{
		"temperature": p.Temperature,
		"max_tokens":  float64(p.MaxTokens),
	}
	if p.TopP > 0 {
		opts["top_p"] = p.TopP
	}
	if p.TopK > 0 {
		opts["top_k"] = float64(p.TopK)
	}
	if p.RepeatPenalty > 0 {
		opts["repeat_penalty"] = p.RepeatPenalty
	}
	if p.Seed != nil {
		opts["seed"] = float64(*p.Seed)
	}
	return opts
}

// Validate checks that the configuration is complete before any transport is invoked
func (c *Config) Validate() error {
	if c.Transport == "" {
		return fmt.Errorf("transport must be set")
	}
	if c.Translation.Source == "" {
		return fmt.Errorf("source language must be set")
	}
	if c.Translation.Target == "" {
		return fmt.Errorf("target language must be set")
	}
	if c.ModelFor(c.Transport) == "" && c.Transport != "mock" {
		return fmt.Errorf("no model configured for transport %q", c.Transport)
	}

	p := c.Parameters
	if p.MaxTokens <= 0 {
		return fmt.Errorf("max new tokens must be positive, got %d", p.MaxTokens)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", p.Timeout)
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", p.Temperature)
	}
	if p.TopP < 0 || p.TopP > 1 {
		return fmt.Errorf("top-p must be between 0 and 1, got %g", p.TopP)
	}
	if p.TopK < 0 {
		return fmt.Errorf("top-k must not be negative, got %d", p.TopK)
	}
	if p.RepeatPenalty < 0 {
		return fmt.Errorf("repeat penalty must not be negative, got %g", p.RepeatPenalty)
	}
	for _, s := range p.Stop {
		if s == "" {
			return fmt.Errorf("stop sequences must not be empty")
		}
	}

	if c.Transport == "ollama" && c.Ollama.Host == "" {
		return fmt.Errorf("ollama host must be set")
	}

	return nil
}
