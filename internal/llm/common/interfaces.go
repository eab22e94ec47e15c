package common

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/chriscorrea/babel/internal/config"
)

// LLM is the client interface; every transport client must implement this
type LLM interface {
	Generate(ctx context.Context, messages []Message, modelName string, options ...interface{}) (string, error)
}

// WarningSink is implemented by clients that print user-facing warnings
// the app points it at the same stream as its other diagnostics
type WarningSink interface {
	SetWarnings(w io.Writer)
}

// Provider is the contract every registered transport implements
// BuildOptions turns the request's sampling options and stop sequences into the client's option value
type Provider interface {
	CreateClient(cfg *config.Config, logger *slog.Logger) (LLM, error)
	BuildOptions(sampling map[string]float64, stop []string) []interface{}
	ProviderName() string
	MessageShape() MessageShape
}

// HTTPAdapter holds the endpoint-specific details used by AdapterClient
// the unified client owns the HTTP exchange and delegates everything else
type HTTPAdapter interface {
	ProviderName() string

	// Endpoint returns the full request URL for the given base URL
	Endpoint(baseURL string) string

	// BuildRequest creates the payload that will be JSON marshaled and sent
	BuildRequest(messages []Message, modelName string, options interface{}, logger *slog.Logger) (interface{}, error)

	// ParseResponse extracts generated content from a 200 response body
	ParseResponse(body []byte, logger *slog.Logger) (content string, usage *Usage, err error)

	// HandleError turns a non-200 response into an actionable error
	HandleError(statusCode int, body []byte, modelName string) error

	// HandleConnectionError turns a failed round trip into an actionable error
	HandleConnectionError(err error, baseURL string) error

	// CustomizeRequest may add headers or rewrite the request before it is sent
	CustomizeRequest(req *http.Request) error
}
