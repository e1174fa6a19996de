// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends on these contracts instead of concrete HTTP
// clients or stores, which keeps the report orchestration testable with stubs
// and independent of the ThreatFox and AnythingLLM wire details.
package ports

import (
	"context"

	"github.com/doeshing/foxbrief/internal/domain"
)

// ConfigProvider loads the run configuration from persistent storage.
// Implementations typically read ~/.foxbrief/config.yaml plus the environment.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// FeedClient fetches recent indicators from the threat feed.
type FeedClient interface {
	// FetchRecent returns the parsed feed envelope for IOCs first seen in the
	// last days days (clamped to [1,7]). The envelope is returned unmodified
	// on any 2xx response; callers must check FeedResult.OK.
	FetchRecent(ctx context.Context, days int) (domain.FeedResult, error)
}

// WorkspaceDirectory resolves and creates workspaces in the chat app.
type WorkspaceDirectory interface {
	// ResolveWorkspace maps a workspace name to its slug, matching names
	// case-insensitively. An empty name selects the first listed workspace.
	// Returns domain.ErrWorkspaceNotFound when nothing matches.
	ResolveWorkspace(ctx context.Context, name string) (string, error)
	CreateWorkspace(ctx context.Context, name string) (string, error)
	// GetOrCreateWorkspace resolves the named workspace, creating it when
	// absent. The created flag reports which path was taken.
	GetOrCreateWorkspace(ctx context.Context, name string) (slug string, created bool, err error)
}

// ThreadCreator creates conversation threads inside a workspace.
type ThreadCreator interface {
	CreateThread(ctx context.Context, workspaceSlug, name, slug string) (string, error)
}

// DocumentUploader pushes report artifacts into a workspace.
type DocumentUploader interface {
	UploadDocument(ctx context.Context, path, workspaceSlug, title, source string) error
}

// ChatStreamer drives one streaming conversation turn and returns the full
// accumulated reply. An empty reply is a valid, non-error outcome.
type ChatStreamer interface {
	StreamChat(ctx context.Context, workspaceSlug, threadSlug, message, model string) (string, error)
}

// QuestionRequest carries everything a question strategy may need.
type QuestionRequest struct {
	Result        domain.FeedResult
	Mission       string
	WorkspaceSlug string
}

// QuestionStrategy produces exactly 3 analyst questions or fails, advancing
// the selector to the next strategy in priority order.
type QuestionStrategy interface {
	Name() string
	Questions(ctx context.Context, req QuestionRequest) ([]string, error)
}

// QuestionSelector runs the strategy fallback chain. It always yields 3
// questions because the template strategy cannot fail.
type QuestionSelector interface {
	Generate(ctx context.Context, req QuestionRequest) []string
}

// HistoryRepository persists run records.
type HistoryRepository interface {
	Save(record domain.RunRecord) error
	Records(limit int, search string) ([]domain.RunRecord, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
