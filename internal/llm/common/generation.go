package common

// GenerateOptions contains generation parameters understood by every transport
type GenerateOptions struct {
	Temperature *float64 // sampling temperature (0.0-2.0)
	TopP        *float64 // nucleus sampling threshold (0.0-1.0)
	MaxTokens   *int     // maximum new tokens to generate
	Stop        []string // stop sequences
}

// GenerateOption configures generation parameters using the functional options pattern
type GenerateOption func(*GenerateOptions)

// WithTemperature sets response randomness
func WithTemperature(temp float64) GenerateOption {
	return func(c *GenerateOptions) {
		c.Temperature = &temp
	}
}

// WithTopP sets nucleus sampling threshold (0.0-1.0)
func WithTopP(topP float64) GenerateOption {
	return func(c *GenerateOptions) {
		c.TopP = &topP
	}
}

// WithMaxTokens sets maximum tokens to generate
func WithMaxTokens(maxTokens int) GenerateOption {
	return func(c *GenerateOptions) {
		c.MaxTokens = &maxTokens
	}
}

// WithStop sets stop sequences to halt generation
func WithStop(stop []string) GenerateOption {
	return func(c *GenerateOptions) {
		c.Stop = stop
	}
}

// pointer helpers for optional JSON fields

// IntPtr returns a pointer to an int value
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr returns a pointer to a float64 value
func Float64Ptr(f float64) *float64 {
	return &f
}
