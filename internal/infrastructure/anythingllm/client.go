// Package anythingllm is the REST adapter for a local AnythingLLM instance:
// workspace directory, thread lifecycle, document upload and streaming chat.
package anythingllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

// Per-call timeout budgets: short for metadata calls, long for uploads and
// streaming chat.
const (
	metadataTimeout = 30 * time.Second
	longTimeout     = 120 * time.Second
)

// Client talks to one AnythingLLM instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	longClient *http.Client
}

// NewClient builds a client from settings.
func NewClient(settings domain.ChatAppSettings) *Client {
	return &Client{
		baseURL:    strings.TrimRight(settings.BaseURL, "/"),
		apiKey:     settings.APIKey,
		httpClient: &http.Client{Timeout: metadataTimeout},
		longClient: &http.Client{Timeout: longTimeout},
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// setAuth sets both accepted auth headers: Bearer per the OpenAPI spec and
// X-API-Key for instances that only honor the legacy header.
func (c *Client) setAuth(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-API-Key", c.apiKey)
}

// getJSON issues an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", domain.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", domain.ErrTransport, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: %s: %s", domain.ErrTransport, path, resp.Status, truncate(raw, 500))
	}
	return json.Unmarshal(raw, out)
}

// postJSON issues an authenticated POST with a JSON body and returns the raw
// response bytes on 2xx.
func (c *Client) postJSON(ctx context.Context, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %v", domain.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %v", domain.ErrTransport, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: POST %s: %s: %s", domain.ErrTransport, path, resp.Status, truncate(raw, 500))
	}
	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}

var (
	_ ports.WorkspaceDirectory = (*Client)(nil)
	_ ports.ThreadCreator      = (*Client)(nil)
	_ ports.DocumentUploader   = (*Client)(nil)
	_ ports.ChatStreamer       = (*Client)(nil)
)
