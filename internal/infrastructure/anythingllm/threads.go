package anythingllm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/doeshing/foxbrief/internal/domain"
)

// CreateThread implements ports.ThreadCreator via
// POST /api/v1/workspace/{slug}/thread/new with {name, slug}.
//
// Failure here is not fatal to a run: the orchestrator falls back to a locally
// generated slug and relies on create-on-first-use semantics.
func (c *Client) CreateThread(ctx context.Context, workspaceSlug, name, slug string) (string, error) {
	path := fmt.Sprintf("/api/v1/workspace/%s/thread/new", workspaceSlug)
	raw, err := c.postJSON(ctx, path, map[string]string{"name": name, "slug": slug})
	if err != nil {
		return "", err
	}
	var payload struct {
		Thread struct {
			Slug string `json:"slug"`
		} `json:"thread"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: thread response: %v", domain.ErrTransport, err)
	}
	if payload.Thread.Slug == "" {
		return "", fmt.Errorf("%w: thread created but no slug in response", domain.ErrTransport)
	}
	return payload.Thread.Slug, nil
}
