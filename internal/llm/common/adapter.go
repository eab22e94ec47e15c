package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AdapterClient is the unified HTTP client for chat-completion endpoints
// it issues exactly one request per Generate call and never retries
type AdapterClient struct {
	*BaseClient
	adapter HTTPAdapter
}

// ensure AdapterClient implements the LLM interface
var _ LLM = (*AdapterClient)(nil)

// NewAdapterClient creates a new unified client with the given adapter
func NewAdapterClient(adapter HTTPAdapter, apiKey, baseURL string, opts ...ClientOption) *AdapterClient {
	base := NewBaseClient(apiKey, baseURL, opts...)
	return &AdapterClient{
		BaseClient: base,
		adapter:    adapter,
	}
}

// Generate sends the conversation and returns the raw generated content
func (c *AdapterClient) Generate(ctx context.Context, messages []Message, modelName string, options ...interface{}) (string, error) {
	processedOptions := c.processOptions(options)

	request, err := c.adapter.BuildRequest(messages, modelName, processedOptions, c.Logger)
	if err != nil {
		return "", NewError(CategoryPromptBuild, "failed to build request", err)
	}

	response, err := c.executeRequest(ctx, request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	body, err := c.readResponseBody(response)
	if err != nil {
		return "", err
	}

	if response.StatusCode != http.StatusOK {
		return "", c.adapter.HandleError(response.StatusCode, body, modelName)
	}

	content, usage, err := c.adapter.ParseResponse(body, c.Logger)
	if err != nil {
		return "", err
	}

	c.logSuccess(content, usage)

	return content, nil
}

// processOptions picks the single consolidated options object built by the provider
func (c *AdapterClient) processOptions(options []interface{}) interface{} {
	if len(options) > 1 && c.Logger != nil {
		c.Logger.Warn("Multiple options passed to AdapterClient - only first will be used", "count", len(options))
	}

	if len(options) > 0 {
		return options[0]
	}
	return nil
}

// executeRequest marshals the payload and performs the round trip
func (c *AdapterClient) executeRequest(ctx context.Context, request interface{}) (*http.Response, error) {
	jsonData, err := c.MarshalRequest(request)
	if err != nil {
		return nil, err
	}

	url := c.adapter.Endpoint(c.BaseURL)
	LogRequestExecution(c.Logger, url, c.Timeout.Seconds())

	req, err := CreateJSONRequest(ctx, url, c.APIKey, jsonData)
	if err != nil {
		return nil, NewError(CategoryConfig, fmt.Sprintf("invalid endpoint %s", url), err)
	}

	if err := c.adapter.CustomizeRequest(req); err != nil {
		return nil, NewError(CategoryConfig, "failed to prepare request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		LogRequestFailure(c.Logger, url, err)
		return nil, c.adapter.HandleConnectionError(err, c.BaseURL)
	}

	return resp, nil
}

// MarshalRequest converts the request to JSON
// encoding/json writes struct fields in declaration order and map keys sorted, so equal inputs give equal bytes
func (c *AdapterClient) MarshalRequest(request interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, NewError(CategoryPromptBuild, fmt.Sprintf("failed to marshal %s request", c.adapter.ProviderName()), err)
	}
	return jsonData, nil
}

// readResponseBody reads and logs the HTTP response body
func (c *AdapterClient) readResponseBody(response *http.Response) ([]byte, error) {
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, c.adapter.HandleConnectionError(
			fmt.Errorf("failed to read %s response body: %w", c.adapter.ProviderName(), err), c.BaseURL)
	}

	LogHTTPResponse(c.Logger, response.StatusCode, len(body))
	LogRawResponse(c.Logger, string(body), response.StatusCode)

	return body, nil
}

// logSuccess logs successful completion with token usage
func (c *AdapterClient) logSuccess(content string, usage *Usage) {
	if usage != nil {
		LogTokenUsage(c.Logger, *usage)
	}
	LogRequestCompletion(c.Logger, len(content))
}
