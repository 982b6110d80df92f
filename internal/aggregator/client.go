// Package aggregator provides an HTTP client for the external social-media
// aggregation API that performs the actual publishing.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crosspost/internal/observability"
)

// requestTimeout bounds every aggregator call. Calls are never retried; a
// timeout or error fails the whole request.
const requestTimeout = 30 * time.Second

// StatusError carries a non-2xx upstream response so the API layer can
// propagate the aggregator's status code and body to the caller.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("aggregator returned status %d: %s", e.StatusCode, e.Body)
}

// Client is a thin client for the aggregation API. Authentication is per-call
// with the owning user's stored API key, so the client itself holds no
// credentials.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates an aggregator client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// PublishRequest describes a post to publish through the aggregator.
type PublishRequest struct {
	APIKey       string
	ProfileKey   string
	Content      string
	Platforms    []string
	MediaURLs    []string
	ScheduleDate *time.Time
}

// PublishResult holds the aggregator's identifier for the created post and
// the raw response body for record keeping.
type PublishResult struct {
	ID  string
	Raw string
}

// Publish sends a post to the aggregator. A non-2xx response is returned as a
// *StatusError carrying the upstream status and body.
func (c *Client) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	payload := map[string]any{
		"post":      req.Content,
		"platforms": req.Platforms,
	}
	if len(req.MediaURLs) > 0 {
		payload["mediaUrls"] = req.MediaURLs
	}
	if req.ScheduleDate != nil {
		payload["scheduleDate"] = req.ScheduleDate.Format(time.RFC3339)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/post", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq, req.APIKey, req.ProfileKey)
	httpReq.Header.Set("Content-Type", "application/json")

	status, respBody, err := c.do(httpReq, "publish")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{StatusCode: status, Body: respBody}
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(respBody), &parsed); err != nil {
		return nil, fmt.Errorf("decode aggregator response: %w", err)
	}

	return &PublishResult{ID: parsed.ID, Raw: respBody}, nil
}

// Unpublish deletes a post from the aggregator. A response indicating the
// post no longer exists upstream counts as success, making deletes
// idempotent; any other non-2xx response is a *StatusError.
func (c *Client) Unpublish(ctx context.Context, apiKey, profileKey, externalID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/post/"+externalID, nil)
	if err != nil {
		return err
	}
	c.setHeaders(httpReq, apiKey, profileKey)

	status, respBody, err := c.do(httpReq, "unpublish")
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}
	if status == http.StatusNotFound || strings.Contains(strings.ToLower(respBody), "not found") {
		return nil
	}
	return &StatusError{StatusCode: status, Body: respBody}
}

func (c *Client) setHeaders(req *http.Request, apiKey, profileKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if profileKey != "" {
		req.Header.Set("Profile-Key", profileKey)
	}
}

// do executes the request, records metrics, and returns the status and body.
func (c *Client) do(req *http.Request, operation string) (int, string, error) {
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	observability.AggregatorLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.AggregatorRequests.WithLabelValues(operation, "transport_error").Inc()
		return 0, "", fmt.Errorf("aggregator request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.AggregatorRequests.WithLabelValues(operation, "read_error").Inc()
		return 0, "", fmt.Errorf("read aggregator response: %w", err)
	}

	outcome := "success"
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "upstream_error"
	}
	observability.AggregatorRequests.WithLabelValues(operation, outcome).Inc()

	return resp.StatusCode, string(body), nil
}
