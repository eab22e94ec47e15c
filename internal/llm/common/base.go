package common

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured
const DefaultTimeout = 120 * time.Second

// BaseClient contains client configuration shared across HTTP transports
type BaseClient struct {
	APIKey     string
	HTTPClient *http.Client
	BaseURL    string
	Logger     *slog.Logger
	Timeout    time.Duration
}

// ClientOption configures a BaseClient using the functional options pattern
type ClientOption func(*BaseClient)

// WithLogger sets the logger for any client
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *BaseClient) {
		c.Logger = logger
	}
}

// WithHTTPClient sets the HTTP client for any client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *BaseClient) {
		c.HTTPClient = client
	}
}

// WithTimeout bounds the whole request, including reading the body
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *BaseClient) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// NewBaseClient creates a base client with sensible defaults
func NewBaseClient(apiKey, defaultBaseURL string, opts ...ClientOption) *BaseClient {
	c := &BaseClient{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}

	return c
}
