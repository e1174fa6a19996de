package anythingllm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/foxbrief/internal/domain"
)

// Workspace is one entry from the workspace list endpoint.
type Workspace struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Workspaces returns the workspace list for the authenticated user.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var payload struct {
		Workspaces []Workspace `json:"workspaces"`
	}
	if err := c.getJSON(ctx, "/api/v1/workspaces", &payload); err != nil {
		return nil, err
	}
	return payload.Workspaces, nil
}

// ResolveWorkspace implements ports.WorkspaceDirectory. Name matching is a
// case-insensitive exact match; an empty name selects the first workspace.
func (c *Client) ResolveWorkspace(ctx context.Context, name string) (string, error) {
	workspaces, err := c.Workspaces(ctx)
	if err != nil {
		return "", err
	}
	if len(workspaces) == 0 {
		return "", domain.ErrWorkspaceNotFound
	}
	if name == "" {
		return workspaces[0].Slug, nil
	}
	key := strings.ToLower(strings.TrimSpace(name))
	for _, ws := range workspaces {
		if strings.ToLower(strings.TrimSpace(ws.Name)) == key {
			return ws.Slug, nil
		}
	}
	return "", domain.ErrWorkspaceNotFound
}

// CreateWorkspace implements ports.WorkspaceDirectory via POST /api/v1/workspace/new.
func (c *Client) CreateWorkspace(ctx context.Context, name string) (string, error) {
	raw, err := c.postJSON(ctx, "/api/v1/workspace/new", map[string]string{"name": name})
	if err != nil {
		return "", err
	}
	slug := extractWorkspaceSlug(raw)
	if slug == "" {
		return "", fmt.Errorf("%w: workspace created but no slug in response: %s", domain.ErrTransport, truncate(raw, 500))
	}
	return slug, nil
}

// extractWorkspaceSlug pulls the slug out of whichever shape the instance
// returns: a top-level field, a nested workspace object, or the first entry of
// a workspace list (object or bare string). The response shape varies across
// AnythingLLM versions, so the attempts are ordered and the first match wins.
func extractWorkspaceSlug(raw []byte) string {
	var payload struct {
		Slug      string `json:"slug"`
		Workspace struct {
			Slug string `json:"slug"`
		} `json:"workspace"`
		Workspaces []json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Slug != "" {
		return payload.Slug
	}
	if payload.Workspace.Slug != "" {
		return payload.Workspace.Slug
	}
	if len(payload.Workspaces) > 0 {
		first := payload.Workspaces[0]
		var ws struct {
			Slug string `json:"slug"`
		}
		if err := json.Unmarshal(first, &ws); err == nil && ws.Slug != "" {
			return ws.Slug
		}
		var s string
		if err := json.Unmarshal(first, &s); err == nil {
			return s
		}
	}
	return ""
}

// GetOrCreateWorkspace resolves the named workspace, creating it when absent.
func (c *Client) GetOrCreateWorkspace(ctx context.Context, name string) (slug string, created bool, err error) {
	slug, err = c.ResolveWorkspace(ctx, name)
	if err == nil {
		return slug, false, nil
	}
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		return "", false, err
	}
	slug, err = c.CreateWorkspace(ctx, name)
	if err != nil {
		return "", false, err
	}
	return slug, true, nil
}
