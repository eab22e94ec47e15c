package local

import (
	"log/slog"
	"strings"
	"time"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/llm/common"
)

// Provider implements the common.Provider interface for in-process inference
type Provider struct{}

var _ common.Provider = (*Provider)(nil)

// New creates a new local provider instance
func New() *Provider {
	return &Provider{}
}

// CreateClient resolves the engine and device settings
func (p *Provider) CreateClient(cfg *config.Config, logger *slog.Logger) (common.LLM, error) {
	engine, err := LookupEngine(cfg.Local.Engine)
	if err != nil {
		return nil, common.NewError(common.CategoryModelLoad, "no inference engine selected", err).
			WithHint("Pick one with --engine (available: " + strings.Join(Engines(), ", ") +
				"), build with -tags ORT for the ONNX Runtime engine, or use --transport ollama.")
	}

	device, err := ParseDevice(cfg.Local.Device)
	if err != nil {
		return nil, common.NewError(common.CategoryConfig, "invalid device", err)
	}

	timeout := time.Duration(cfg.Parameters.Timeout) * time.Second
	if timeout <= 0 {
		timeout = common.DefaultTimeout
	}
	hub := NewHub(cfg.Local.RegistryURL, cfg.Local.Token, nil, logger)
	hub.HTTPClient.Timeout = timeout

	return NewClient(engine,
		WithHub(hub),
		WithDevice(device),
		WithLogger(logger),
	), nil
}

// BuildOptions keeps only the token budget and stop sequences; decoding is greedy
func (p *Provider) BuildOptions(sampling map[string]float64, stop []string) []interface{} {
	var functionalOpts []GenerateOption
	if v, ok := sampling["max_tokens"]; ok && v > 0 {
		functionalOpts = append(functionalOpts, WithMaxTokens(int(v)))
	}
	if len(stop) > 0 {
		functionalOpts = append(functionalOpts, WithStop(stop))
	}
	return []interface{}{NewGenerateOptions(functionalOpts...)}
}

// ProviderName returns the name of this provider
func (p *Provider) ProviderName() string {
	return "local"
}

// MessageShape reports that processors take structured content parts
func (p *Provider) MessageShape() common.MessageShape {
	return common.ShapeStructured
}
