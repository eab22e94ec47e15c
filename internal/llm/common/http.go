package common

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CreateJSONRequest creates a JSON POST request; the bearer header is only set when apiKey is present
func CreateJSONRequest(ctx context.Context, url, apiKey string, jsonData []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}

	return req, nil
}

// JoinURL appends path to baseURL without doubling slashes
func JoinURL(baseURL, path string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// NormalizeHost turns a host setting into a base URL
//
// A bare host gets the http scheme, and a bare host without a port gets defaultPort.
// This mirrors how OLLAMA_HOST values such as "0.0.0.0" or "localhost:11434" are written.
func NormalizeHost(host, defaultPort string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("host is empty")
	}

	schemeAdded := false
	if !strings.Contains(host, "://") {
		host = "http://" + host
		schemeAdded = true
	}

	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid host %q: unsupported scheme %q", host, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid host %q: missing host name", host)
	}

	if schemeAdded && u.Port() == "" && defaultPort != "" {
		u.Host = u.Host + ":" + defaultPort
	}

	return strings.TrimSuffix(u.String(), "/"), nil
}
