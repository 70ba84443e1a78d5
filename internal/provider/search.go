package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/leadscout/internal/logger"
)

// searchResultLimit maximizes yield per search credit.
const searchResultLimit = 100

// SearchClient talks to the web-search provider.
type SearchClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewSearchClient creates a search provider client.
func NewSearchClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *SearchClient {
	return &SearchClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
		logger:  log,
	}
}

// Search runs a query and returns result URLs. A 429 surfaces as
// ErrRateLimited so the caller can apply its own backoff policy.
func (c *SearchClient) Search(ctx context.Context, query string) ([]string, error) {
	payload := map[string]any{
		"query":   query,
		"limit":   searchResultLimit,
		"lang":    "en",
		"country": "us",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("search %q: %w", query, ErrRateLimited)
	default:
		return nil, fmt.Errorf("search %q: unexpected status %d", query, resp.StatusCode)
	}

	var env struct {
		Success bool `json:"success"`
		Data    []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("search %q: %w: %v", query, ErrUnrecognizedShape, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("search %q: %w", query, ErrUnrecognizedShape)
	}

	urls := make([]string, 0, len(env.Data))
	for _, item := range env.Data {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls, nil
}
