package anythingllm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/foxbrief/internal/domain"
)

// ChatCompletion issues a non-streaming completion against the instance's
// OpenAI-compatible endpoint. The workspace slug doubles as the model name, so
// the reply is grounded in that workspace's documents.
func (c *Client) ChatCompletion(ctx context.Context, workspaceSlug, prompt string) (string, error) {
	raw, err := c.postJSON(ctx, "/api/v1/openai/chat/completions", map[string]interface{}{
		"model": workspaceSlug,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
	})
	if err != nil {
		return "", err
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("%w: chat completion response: %v", domain.ErrTransport, err)
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
