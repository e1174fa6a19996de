// Package threatfox implements the feed client for the ThreatFox get_iocs API.
//
// API docs: https://threatfox.abuse.ch/api/#recent-iocs
package threatfox

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

const requestTimeout = 60 * time.Second

// Client queries ThreatFox for recent IOCs.
type Client struct {
	endpoint   string
	authKey    string
	httpClient *http.Client
}

// NewClient builds a feed client from settings. A nil httpClient gets a
// default with the feed timeout applied.
func NewClient(settings domain.ThreatFoxSettings, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	endpoint := settings.Endpoint
	if endpoint == "" {
		endpoint = domain.DefaultThreatFoxEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		authKey:    settings.AuthKey,
		httpClient: httpClient,
	}
}

// wire mirrors the raw response envelope. Data stays raw because ThreatFox
// returns a string error payload instead of a record list on non-ok status.
type wire struct {
	QueryStatus string          `json:"query_status"`
	Count       int             `json:"count"`
	Data        json.RawMessage `json:"data"`
}

// FetchRecent implements ports.FeedClient. The lookback window is clamped to
// the [1,7] range the API accepts. The call is not retried.
func (c *Client) FetchRecent(ctx context.Context, days int) (domain.FeedResult, error) {
	key := strings.TrimSpace(c.authKey)
	if key == "" || key == domain.PlaceholderAuthKey {
		return domain.FeedResult{}, fmt.Errorf("%w: THREATFOX_AUTH_KEY not set or still placeholder", domain.ErrConfig)
	}

	days = domain.ClampFeedDays(days)

	body, err := json.Marshal(map[string]interface{}{
		"query": "get_iocs",
		"days":  days,
	})
	if err != nil {
		return domain.FeedResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.FeedResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Auth-Key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FeedResult{}, fmt.Errorf("%w: threatfox request: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FeedResult{}, fmt.Errorf("%w: threatfox read body: %v", domain.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.FeedResult{}, fmt.Errorf("%w: threatfox %s: %s", domain.ErrTransport, resp.Status, truncate(raw, 500))
	}

	var envelope wire
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return domain.FeedResult{}, fmt.Errorf("%w: threatfox response: %v", domain.ErrTransport, err)
	}

	result := domain.FeedResult{
		QueryStatus: envelope.QueryStatus,
		Count:       envelope.Count,
	}
	if envelope.QueryStatus == "ok" {
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, &result.Data); err != nil {
				return domain.FeedResult{}, fmt.Errorf("%w: threatfox data: %v", domain.ErrTransport, err)
			}
		}
	} else {
		result.ErrorPayload = envelope.Data
	}
	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}

var _ ports.FeedClient = (*Client)(nil)
