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

// RenderedPage is the outcome of rendering a page in a mobile browsing
// context: any mailto links found in the DOM plus the visible text.
type RenderedPage struct {
	MailtoLinks []string `json:"mailto_links"`
	VisibleText string   `json:"visible_text"`
}

// RenderClient talks to the browser-rendering service used by the most
// expensive enrichment tier.
type RenderClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewRenderClient creates a renderer client.
func NewRenderClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *RenderClient {
	return &RenderClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
		logger:  log,
	}
}

// Render loads the URL under the given device profile, asks the service to
// tap any Contact/Email affordance and wait for the UI to settle, then
// returns the rendered DOM's mailto links and visible text. The service
// owns the browser context; every invocation gets a fresh one.
func (c *RenderClient) Render(ctx context.Context, pageURL, device string) (*RenderedPage, error) {
	payload := map[string]any{
		"url":           pageURL,
		"device":        device,
		"tap_affordances": []string{"Contact", "Email"},
		"settle_ms":     1500,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal render payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", pageURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("render %q: %w", pageURL, ErrRateLimited)
	default:
		return nil, fmt.Errorf("render %q: unexpected status %d", pageURL, resp.StatusCode)
	}

	var env struct {
		Success bool          `json:"success"`
		Data    *RenderedPage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("render %q: %w: %v", pageURL, ErrUnrecognizedShape, err)
	}
	if !env.Success || env.Data == nil {
		return nil, fmt.Errorf("render %q: %w", pageURL, ErrUnrecognizedShape)
	}
	return env.Data, nil
}
