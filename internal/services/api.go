package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "http://localhost:8000"

// APIClient performs raw JSON POST requests against the generation API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for baseURL. Trailing slashes are dropped.
func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIClient{baseURL: baseURL, httpClient: client}
}

// BaseURL returns the normalized base URL.
func (a *APIClient) BaseURL() string {
	return a.baseURL
}

// APIResponse represents a fully read API response.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Post sends data to path and reads the whole response body.
func (a *APIClient) Post(ctx context.Context, path string, data []byte, accept string) (*APIResponse, error) {
	resp, err := a.Open(ctx, path, data, accept)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		IsJSON:     gjson.ValidBytes(body),
	}, nil
}

// Open sends data to path and returns the response with its body unread. The caller closes the body.
func (a *APIClient) Open(ctx context.Context, path string, data []byte, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
