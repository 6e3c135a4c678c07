package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// Row is one raw record as returned by a backend domain endpoint. Field
// names vary between backend services; the source adapters resolve them.
type Row = map[string]any

// RecordLister is the read-only contract every domain endpoint satisfies:
// list records, optionally filtered by a time window. An endpoint with no
// data returns an empty collection, not an error.
type RecordLister interface {
	List(ctx context.Context, path string, window domain.TimeRange) ([]Row, error)
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to the console backend's REST services.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context, path string, window domain.TimeRange) ([]Row, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint path %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", path, err)
	}

	query := req.URL.Query()
	if !window.From.IsZero() {
		query.Set("from", window.From.Format(time.RFC3339))
	}
	if !window.To.IsZero() {
		query.Set("to", window.To.Format(time.RFC3339))
	}
	req.URL.RawQuery = query.Encode()

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %q failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %q", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %q: %w", path, err)
	}
	if len(body) == 0 {
		return []Row{}, nil
	}

	return decodeRows(body, path)
}

// decodeRows accepts either a bare JSON array or an envelope object.
// Backend services are inconsistent about the envelope key, so the known
// keys are tried in order: items, data, results, records.
func decodeRows(body []byte, path string) ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %q: %w", path, err)
	}

	for _, key := range []string{"items", "data", "results", "records"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode %q envelope from %q: %w", key, path, err)
		}
		return rows, nil
	}

	return nil, fmt.Errorf("response from %q has no recognized collection key", path)
}
