package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/llm/common"
)

const (
	// DefaultHost is used when neither --host nor OLLAMA_HOST is set
	DefaultHost = "http://127.0.0.1:11434"
	// DefaultPort is appended to bare host names
	DefaultPort = "11434"

	chatPath  = "/api/chat"
	userAgent = "babel"
)

// Provider implements the common.Provider interface for Ollama
type Provider struct{}

// ensure Provider implements the common.Provider and common.HTTPAdapter interfaces
var (
	_ common.Provider    = (*Provider)(nil)
	_ common.HTTPAdapter = (*Provider)(nil)
)

// New creates a new Ollama provider instance
func New() *Provider {
	return &Provider{}
}

// CreateClient creates a new LLM client using the unified adapter pattern
func (p *Provider) CreateClient(cfg *config.Config, logger *slog.Logger) (common.LLM, error) {
	host := cfg.Ollama.Host
	if host == "" {
		host = DefaultHost
	}

	baseURL, err := common.NormalizeHost(host, DefaultPort)
	if err != nil {
		return nil, common.NewError(common.CategoryConfig, "invalid Ollama host", err).
			WithHint("Set --host or OLLAMA_HOST to a URL such as http://127.0.0.1:11434")
	}

	opts := []common.ClientOption{
		common.WithTimeout(time.Duration(cfg.Parameters.Timeout) * time.Second),
	}
	if logger != nil {
		opts = append(opts, common.WithLogger(logger))
	}

	// Ollama doesn't require an API key
	return common.NewAdapterClient(p, "", baseURL, opts...), nil
}

// BuildOptions creates Ollama-specific generation options from the request's sampling options
func (p *Provider) BuildOptions(sampling map[string]float64, stop []string) []interface{} {
	var functionalOpts []GenerateOption

	if v, ok := sampling["temperature"]; ok {
		functionalOpts = append(functionalOpts, WithTemperature(v))
	}
	if v, ok := sampling["max_tokens"]; ok && v > 0 {
		functionalOpts = append(functionalOpts, WithMaxTokens(int(v)))
	}
	if v, ok := sampling["top_p"]; ok && v > 0 {
		functionalOpts = append(functionalOpts, WithTopP(v))
	}
	if v, ok := sampling["top_k"]; ok && v > 0 {
		functionalOpts = append(functionalOpts, WithTopK(int(v)))
	}
	if v, ok := sampling["repeat_penalty"]; ok && v > 0 {
		functionalOpts = append(functionalOpts, WithRepeatPenalty(v))
	}
	if v, ok := sampling["seed"]; ok {
		functionalOpts = append(functionalOpts, WithSeed(int(v)))
	}
	if len(stop) > 0 {
		functionalOpts = append(functionalOpts, WithStop(stop))
	}

	return []interface{}{NewGenerateOptions(functionalOpts...)}
}

// ProviderName returns the name of this provider
func (p *Provider) ProviderName() string {
	return "ollama"
}

// MessageShape reports that the chat endpoint takes string content
func (p *Provider) MessageShape() common.MessageShape {
	return common.ShapePlain
}

// Endpoint returns the chat endpoint under baseURL
func (p *Provider) Endpoint(baseURL string) string {
	return common.JoinURL(baseURL, chatPath)
}

// BuildRequest creates an Ollama-specific request from messages and options
func (p *Provider) BuildRequest(messages []common.Message, modelName string, options interface{}, logger *slog.Logger) (interface{}, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is empty")
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages to send")
	}

	config, ok := options.(*GenerateOptions)
	if !ok || config == nil {
		config = &GenerateOptions{}
	}

	common.LogAPIRequest(logger, "Ollama", modelName, messages, &config.GenerateOptions)

	// the chat API only accepts string content
	plain := make([]common.Message, len(messages))
	for i, msg := range messages {
		plain[i] = common.Message{Role: msg.Role, Content: msg.Text()}
	}

	return &ChatRequest{
		Model:    modelName,
		Stream:   false,
		Messages: plain,
		Options:  config.requestOptions(),
	}, nil
}

// ParseResponse parses an Ollama API response and extracts content and usage
func (p *Provider) ParseResponse(body []byte, logger *slog.Logger) (string, *common.Usage, error) {
	raw := string(body)

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		common.LogJSONUnmarshalError(logger, err, raw)
		return "", nil, common.NewError(common.CategoryProtocol, "failed to parse Ollama response as JSON", err).
			WithRaw(raw)
	}

	if chatResp.Error != "" {
		return "", nil, common.NewError(common.CategoryProtocol,
			fmt.Sprintf("Ollama reported an error: %s", chatResp.Error), nil)
	}

	if chatResp.Message == nil {
		return "", nil, common.NewError(common.CategorySchema, `Ollama response has no "message" field`, nil).
			WithRaw(raw)
	}

	// a non-streaming reply must be complete
	if chatResp.Done != nil && !*chatResp.Done {
		return "", nil, common.NewError(common.CategoryProtocol, "incomplete response received from Ollama (done: false)", nil).
			WithRaw(raw)
	}

	if chatResp.Message.Content == nil || strings.TrimSpace(*chatResp.Message.Content) == "" {
		return "", nil, common.NewError(common.CategoryEmpty, "empty response from Ollama: message.content is missing or blank", nil).
			WithRaw(raw)
	}

	var usage *common.Usage
	if chatResp.PromptEvalCount > 0 || chatResp.EvalCount > 0 {
		usage = &common.Usage{
			PromptTokens:     chatResp.PromptEvalCount,
			CompletionTokens: chatResp.EvalCount,
			TotalTokens:      chatResp.PromptEvalCount + chatResp.EvalCount,
		}
	}

	return *chatResp.Message.Content, usage, nil
}

// HandleError creates Ollama-specific error messages from HTTP error responses
func (p *Provider) HandleError(statusCode int, body []byte, modelName string) error {
	detail := errorDetail(body)

	var cause error
	if detail != "" {
		cause = errors.New(detail)
	}

	// invalid model name or missing model
	if statusCode == http.StatusNotFound || strings.Contains(detail, "try pulling") {
		return common.NewError(common.CategoryHTTPStatus,
			fmt.Sprintf("model %q was not found on the Ollama server (status %d)", modelName, statusCode), cause).
			WithStatus(statusCode).
			WithHint(fmt.Sprintf(`It may not be installed locally or available on the Ollama server.

To download it, run:
    ollama pull %s

To see all models you have installed, run:
    ollama list`, modelName))
	}

	if statusCode == http.StatusRequestEntityTooLarge {
		return common.NewError(common.CategoryHTTPStatus, "the request was too large for Ollama to process", cause).
			WithStatus(statusCode).
			WithHint("Please reduce the size of your input or select a model with a larger context window.")
	}

	return common.NewError(common.CategoryHTTPStatus,
		fmt.Sprintf("Ollama returned HTTP %d %s", statusCode, http.StatusText(statusCode)), cause).
		WithStatus(statusCode)
}

// errorDetail prefers the "error" field of a JSON body and falls back to the raw text
func errorDetail(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return strings.TrimSpace(string(body))
}

// HandleConnectionError provides helpful guidance when Ollama is unreachable
func (p *Provider) HandleConnectionError(err error, baseURL string) error {
	if errors.Is(err, context.Canceled) {
		return common.NewError(common.CategoryTransport, "request to Ollama was cancelled", err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return common.NewError(common.CategoryTransport,
			fmt.Sprintf("request to Ollama at %s timed out", baseURL), err).
			WithHint("Large models can take a while to load on first use. Increase --timeout or try a smaller model.")
	}

	return common.NewError(common.CategoryTransport,
		fmt.Sprintf("cannot reach Ollama at %s", baseURL), err).
		WithHint(fmt.Sprintf(`Ollama may not be running or installed:
  - Install Ollama: https://ollama.com/download
  - Start Ollama: ollama serve
  - Check if Ollama is running: curl %s/api/version
  - Point to another server with --host or OLLAMA_HOST`, baseURL))
}

// CustomizeRequest identifies the client; Ollama needs no auth headers
func (p *Provider) CustomizeRequest(req *http.Request) error {
	req.Header.Set("User-Agent", userAgent)
	return nil
}
