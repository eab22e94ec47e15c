package local

import (
	"strings"

	"github.com/chriscorrea/babel/internal/llm/common"
)

// GenerateOptions contains parameters for in-process generation
// decoding is always greedy, so only the token budget and stop sequences apply
type GenerateOptions struct {
	common.GenerateOptions
}

// GenerateOption configures local generation parameters
type GenerateOption func(*GenerateOptions)

// NewGenerateOptions creates new GenerateOptions with functional options applied
func NewGenerateOptions(opts ...GenerateOption) *GenerateOptions {
	config := &GenerateOptions{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithMaxTokens sets the maximum number of new tokens
func WithMaxTokens(maxTokens int) GenerateOption {
	return func(c *GenerateOptions) {
		common.WithMaxTokens(maxTokens)(&c.GenerateOptions)
	}
}

// WithStop sets sequences that end the translation
func WithStop(stop []string) GenerateOption {
	return func(c *GenerateOptions) {
		common.WithStop(stop)(&c.GenerateOptions)
	}
}

// maxNewTokens returns the configured budget or fallback
func (c *GenerateOptions) maxNewTokens(fallback int) int {
	if c == nil || c.MaxTokens == nil || *c.MaxTokens <= 0 {
		return fallback
	}
	return *c.MaxTokens
}

// cutAtStop truncates text at the earliest stop sequence
func (c *GenerateOptions) cutAtStop(text string) string {
	if c == nil {
		return text
	}
	cut := len(text)
	for _, stop := range c.Stop {
		if stop == "" {
			continue
		}
		if i := strings.Index(text, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	return text[:cut]
}
