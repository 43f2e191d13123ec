package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	matchPath      = "/tmdb/match"
	defaultTimeout = 60 * time.Second

	// Upper bound on how much of an error body ends up in a ServiceError.
	maxErrorBody = 512
)

// Client calls the batched match endpoint of a match service.
// It performs exactly one HTTP round trip per batch and never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the service rooted at baseURL.
// A zero timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Match sends the whole batch and decodes the positional response.
func (c *Client) Match(ctx context.Context, request Request) (*Response, error) {
	if len(request.Queries) == 0 {
		return nil, ErrEmptyBatch
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+matchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("match request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ServiceError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode match response: %w", err)
	}
	return &out, nil
}
