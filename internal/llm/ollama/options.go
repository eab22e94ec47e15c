package ollama

import "github.com/chriscorrea/babel/internal/llm/common"

// GenerateOptions contains Ollama-specific generation parameters
type GenerateOptions struct {
	common.GenerateOptions

	// Ollama-specific parameters
	TopK          *int     // Limits token selection to top K candidates
	RepeatPenalty *float64 // Penalty for repeating tokens (default: 1.1)
	Seed          *int     // Random seed for deterministic generation
}

// GenerateOption configures Ollama-specific generation parameters
type GenerateOption func(*GenerateOptions)

// NewGenerateOptions creates new GenerateOptions with functional options applied
func NewGenerateOptions(opts ...GenerateOption) *GenerateOptions {
	config := &GenerateOptions{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithTopK limits token selection to top K candidates
func WithTopK(topK int) GenerateOption {
	return func(c *GenerateOptions) {
		c.TopK = &topK
	}
}

// WithRepeatPenalty sets penalty for repeating tokens
func WithRepeatPenalty(penalty float64) GenerateOption {
	return func(c *GenerateOptions) {
		c.RepeatPenalty = &penalty
	}
}

// WithSeed enables reproducible sampling
func WithSeed(seed int) GenerateOption {
	return func(c *GenerateOptions) {
		c.Seed = &seed
	}
}

// Common options delegate to the shared implementations

// WithTemperature sets response randomness (0.0-2.0)
func WithTemperature(temp float64) GenerateOption {
	return func(c *GenerateOptions) {
		common.WithTemperature(temp)(&c.GenerateOptions)
	}
}

// WithTopP sets nucleus sampling threshold (0.0-1.0)
func WithTopP(topP float64) GenerateOption {
	return func(c *GenerateOptions) {
		common.WithTopP(topP)(&c.GenerateOptions)
	}
}

// WithMaxTokens sets maximum tokens to generate (num_predict)
func WithMaxTokens(maxTokens int) GenerateOption {
	return func(c *GenerateOptions) {
		common.WithMaxTokens(maxTokens)(&c.GenerateOptions)
	}
}

// WithStop sets stop sequences to halt generation
func WithStop(stop []string) GenerateOption {
	return func(c *GenerateOptions) {
		common.WithStop(stop)(&c.GenerateOptions)
	}
}

// requestOptions maps the options onto Ollama's wire names
// returns nil when nothing is set so "options" is omitted entirely
func (c *GenerateOptions) requestOptions() *RequestOptions {
	if c.Temperature == nil && c.MaxTokens == nil && c.TopP == nil &&
		c.TopK == nil && c.RepeatPenalty == nil && c.Seed == nil && len(c.Stop) == 0 {
		return nil
	}
	return &RequestOptions{
		Temperature:   c.Temperature,
		NumPredict:    c.MaxTokens,
		TopP:          c.TopP,
		TopK:          c.TopK,
		RepeatPenalty: c.RepeatPenalty,
		Seed:          c.Seed,
		Stop:          c.Stop,
	}
}
