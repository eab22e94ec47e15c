package mock

import (
	"log/slog"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/llm/common"
)

// Provider implements the common.Provider interface for --test runs
type Provider struct{}

var _ common.Provider = (*Provider)(nil)

func New() *Provider {
	return &Provider{}
}

// CreateClient creates a new mock LLM client
func (p *Provider) CreateClient(cfg *config.Config, logger *slog.Logger) (common.LLM, error) {
	return &Client{}, nil
}

// BuildOptions returns no options; the mock ignores sampling
func (p *Provider) BuildOptions(sampling map[string]float64, stop []string) []interface{} {
	return []interface{}{}
}

// ProviderName returns the name of this provider
func (p *Provider) ProviderName() string {
	return "mock"
}

// MessageShape reports plain content
func (p *Provider) MessageShape() common.MessageShape {
	return common.ShapePlain
}
