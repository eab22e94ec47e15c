package local

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/chriscorrea/babel/internal/llm/common"
)

// DefaultRegistryURL is the Hugging Face Hub
const DefaultRegistryURL = "https://huggingface.co"

const licenseHint = `Check that you accepted the model license on Hugging Face
and that HF_TOKEN holds a valid access token.`

// ModelInfo is the subset of registry metadata used to check access
type ModelInfo struct {
	ID          string `json:"id"`
	Private     bool   `json:"private"`
	Gated       any    `json:"gated"` // false, "auto" or "manual"
	PipelineTag string `json:"pipeline_tag"`
	SHA         string `json:"sha"`
}

// IsGated reports whether downloading the weights requires an accepted license
func (m ModelInfo) IsGated() bool {
	switch v := m.Gated.(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	}
	return false
}

// Hub checks that a model exists and is accessible before an engine downloads it
type Hub struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewHub creates a registry client; an empty baseURL means the public hub
func NewHub(baseURL, token string, client *http.Client, logger *slog.Logger) *Hub {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	if client == nil {
		client = &http.Client{Timeout: common.DefaultTimeout}
	}

	// resolve requests redirect to a CDN; the redirect itself proves access
	noRedirect := *client
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Hub{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &noRedirect,
		Logger:     logger,
	}
}

// Check resolves modelID against the registry and verifies the weights can be fetched
func (h *Hub) Check(ctx context.Context, modelID string) (*ModelInfo, error) {
	infoURL := h.BaseURL + "/api/models/" + escapeModelID(modelID)

	resp, err := h.do(ctx, http.MethodGet, infoURL)
	if err != nil {
		return nil, h.networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, h.networkError(err)
	}

	if h.Logger != nil {
		h.Logger.Debug("Model registry response", "model", modelID, "status_code", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, h.statusError(resp.StatusCode, modelID)
	}

	var info ModelInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, common.NewError(common.CategoryModelLoad, "model registry returned invalid metadata", err).
			WithRaw(string(body))
	}

	if info.IsGated() {
		if err := h.checkFileAccess(ctx, modelID, "config.json"); err != nil {
			return nil, err
		}
	}

	return &info, nil
}

func (h *Hub) checkFileAccess(ctx context.Context, modelID, file string) error {
	fileURL := fmt.Sprintf("%s/%s/resolve/main/%s", h.BaseURL, escapeModelID(modelID), file)

	resp, err := h.do(ctx, http.MethodHead, fileURL)
	if err != nil {
		return h.networkError(err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return h.statusError(resp.StatusCode, modelID)
	}
	return nil
}

func (h *Hub) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	return h.HTTPClient.Do(req)
}

func (h *Hub) statusError(statusCode int, modelID string) error {
	var e *common.Error
	switch statusCode {
	case http.StatusUnauthorized:
		if h.Token == "" {
			e = common.NewError(common.CategoryModelLoad,
				fmt.Sprintf("model %q requires authentication but HF_TOKEN is not set", modelID), nil)
		} else {
			e = common.NewError(common.CategoryModelLoad,
				fmt.Sprintf("the registry rejected HF_TOKEN for model %q", modelID), nil)
		}
	case http.StatusForbidden:
		e = common.NewError(common.CategoryModelLoad,
			fmt.Sprintf("access to model %q is restricted; the license may not be accepted", modelID), nil)
	case http.StatusNotFound:
		e = common.NewError(common.CategoryModelLoad,
			fmt.Sprintf("model %q was not found in the registry", modelID), nil)
	default:
		e = common.NewError(common.CategoryModelLoad,
			fmt.Sprintf("model registry returned HTTP %d for %q", statusCode, modelID), nil)
	}
	return e.WithStatus(statusCode).WithHint(licenseHint)
}

func (h *Hub) networkError(err error) error {
	return common.NewError(common.CategoryModelLoad,
		fmt.Sprintf("cannot reach model registry at %s", h.BaseURL), err).
		WithHint("Check your network connection, or point --model at a local model directory.")
}

// escapeModelID escapes each path segment of an "owner/name" id
func escapeModelID(modelID string) string {
	segments := strings.Split(modelID, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
