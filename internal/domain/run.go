package domain

import (
	"context"
	"time"
)

// RunRequest carries per-invocation options into the report orchestrator.
type RunRequest struct {
	Context context.Context

	// Mission is operator-supplied free text used to tailor analyst questions.
	Mission string

	// Days overrides the configured lookback window when > 0.
	Days int

	// WorkspaceName overrides the configured target workspace when set.
	WorkspaceName string

	// ModelOverride selects a chat model for the conversation turns; omitted
	// from request bodies when empty.
	ModelOverride string

	// DryRun builds the report and returns it without touching the chat app.
	DryRun bool
}

// TurnResult records the outcome of one conversation turn. A failed turn does
// not abort the remaining turns.
type TurnResult struct {
	Question   string
	ReplyChars int
	Err        error
}

// RunSummary is the orchestrator's account of a completed run.
type RunSummary struct {
	WorkspaceName  string
	WorkspaceSlug  string
	ThreadName     string
	ThreadSlug     string
	IndicatorCount int
	Questions      []string
	Turns          []TurnResult
	Markdown       string
	DryRun         bool
}

// TurnsOK counts conversation turns that completed without error.
func (s RunSummary) TurnsOK() int {
	n := 0
	for _, t := range s.Turns {
		if t.Err == nil {
			n++
		}
	}
	return n
}

// RunRecord is the persisted trace of a report run.
type RunRecord struct {
	Timestamp     time.Time
	WorkspaceSlug string
	ThreadSlug    string
	IOCCount      int
	QuestionCount int
	TurnsOK       int
	TurnsFailed   int
	Status        string
}
