package anythingllm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/foxbrief/internal/domain"
)

// streamEvent is one JSON object from the stream-chat event stream. The text
// fragment may arrive under different field names depending on version.
type streamEvent struct {
	TextResponse string `json:"textResponse"`
	Text         string `json:"text"`
	Delta        string `json:"delta"`
}

// fragment returns the first non-empty text field, in fixed priority order.
func (e streamEvent) fragment() string {
	if e.TextResponse != "" {
		return e.TextResponse
	}
	if e.Text != "" {
		return e.Text
	}
	return e.Delta
}

// StreamChat implements ports.ChatStreamer. The message is posted to
// POST /api/v1/workspace/{ws}/thread/{thread}/stream-chat and the line-delimited
// event stream is accumulated into the full reply. The model field is omitted
// from the body when empty. An empty reply is a valid outcome.
func (c *Client) StreamChat(ctx context.Context, workspaceSlug, threadSlug, message, model string) (string, error) {
	body := map[string]interface{}{
		"message": message,
		"mode":    "chat",
	}
	if model != "" {
		body["model"] = model
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("/api/v1/workspace/%s/thread/%s/stream-chat", workspaceSlug, threadSlug)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.longClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: stream-chat: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: stream-chat: %s: %s", domain.ErrTransport, resp.Status, truncate(raw, 500))
	}

	return collectStream(resp.Body), nil
}

// collectStream concatenates text fragments from an SSE-style body. Keep-alive
// and terminator lines are ignored and malformed JSON lines are skipped; the
// stream closing is the only terminator, so whatever accumulated by then is
// the reply.
func collectStream(r io.Reader) string {
	var reply strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "data: ")
		if line == "" || line == "[DONE]" {
			continue
		}
		var event streamEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		reply.WriteString(event.fragment())
	}
	return reply.String()
}
