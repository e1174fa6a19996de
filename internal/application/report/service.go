// Package report orchestrates the daily ThreatFox report workflow end-to-end:
// fetch IOCs, build the artifacts, push them into an AnythingLLM workspace and
// drive the scripted analyst conversation.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

// Artifact file names inside the per-run temp directory.
const (
	jsonArtifactName = "threatfox_iocs.json"
	mdArtifactName   = "threatfox_report.md"
)

// Service orchestrates the report lifecycle. All collaborators are injected;
// Config is loaded once at process start and immutable for the run.
type Service struct {
	Config    domain.Config
	Feed      ports.FeedClient
	Directory ports.WorkspaceDirectory
	Threads   ports.ThreadCreator
	Documents ports.DocumentUploader
	Chat      ports.ChatStreamer
	Questions ports.QuestionSelector
	History   ports.HistoryRepository
	Logger    ports.Logger

	// Now and Sleep are injectable for tests; nil means the real clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Run executes one report run. Fatal failures (credentials, feed status,
// workspace resolution, document upload) return an error; thread creation and
// individual conversation turns degrade softly and the run completes.
func (s *Service) Run(req domain.RunRequest) (domain.RunSummary, error) {
	if s.Feed == nil || s.Questions == nil || s.Logger == nil {
		return domain.RunSummary{}, errors.New("report.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sleep := time.Sleep
	if s.Sleep != nil {
		sleep = s.Sleep
	}

	if !req.DryRun {
		if err := s.Config.ValidateCredentials(); err != nil {
			return domain.RunSummary{}, err
		}
	}

	days := req.Days
	if days <= 0 {
		days = s.Config.ThreatFox.Days
	}
	days = domain.ClampFeedDays(days)

	result, err := s.Feed.FetchRecent(ctx, days)
	if err != nil {
		return domain.RunSummary{}, err
	}
	if !result.OK() {
		return domain.RunSummary{}, fmt.Errorf("%w: query_status=%q %s",
			domain.ErrUpstreamStatus, result.QueryStatus, result.ErrorDetail())
	}

	normalized := result.Normalized()
	summary := domain.RunSummary{
		IndicatorCount: normalized.Count,
		Markdown:       BuildMarkdown(normalized, days, now()),
		DryRun:         req.DryRun,
	}
	if req.DryRun {
		return summary, nil
	}
	if s.Directory == nil || s.Threads == nil || s.Documents == nil || s.Chat == nil {
		return summary, errors.New("report.Service dependencies not satisfied")
	}

	workspaceName := req.WorkspaceName
	if workspaceName == "" {
		workspaceName = s.Config.ChatApp.Workspace
	}
	summary.WorkspaceName = workspaceName
	summary.WorkspaceSlug, err = s.resolveWorkspace(ctx, workspaceName)
	if err != nil {
		return summary, err
	}

	summary.ThreadSlug, summary.ThreadName = s.openThread(ctx, summary.WorkspaceSlug, now(), normalized.Count)

	if err := s.uploadArtifacts(ctx, normalized, summary); err != nil {
		return summary, err
	}

	// Give the instance time to embed the uploaded documents before querying.
	if delay := s.Config.Report.SettleDelay(); delay > 0 {
		sleep(delay)
	}

	questions := s.Questions.Generate(ctx, ports.QuestionRequest{
		Result:        normalized,
		Mission:       req.Mission,
		WorkspaceSlug: summary.WorkspaceSlug,
	})
	questions = append(questions, domain.SummaryQuestion)
	summary.Questions = questions

	model := req.ModelOverride
	if model == "" {
		model = s.Config.ChatApp.Model
	}
	for i, q := range questions {
		reply, err := s.Chat.StreamChat(ctx, summary.WorkspaceSlug, summary.ThreadSlug, q, model)
		turn := domain.TurnResult{Question: q, ReplyChars: len(reply), Err: err}
		summary.Turns = append(summary.Turns, turn)
		if err != nil {
			s.Logger.Warn("conversation turn failed", map[string]interface{}{
				"turn":  fmt.Sprintf("%d/%d", i+1, len(questions)),
				"error": err.Error(),
			})
			continue
		}
		s.Logger.Info("conversation turn complete", map[string]interface{}{
			"turn":        fmt.Sprintf("%d/%d", i+1, len(questions)),
			"reply_chars": len(reply),
		})
	}

	s.recordRun(now(), summary)
	return summary, nil
}

func (s *Service) resolveWorkspace(ctx context.Context, name string) (string, error) {
	slug, created, err := s.Directory.GetOrCreateWorkspace(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	if created {
		s.Logger.Info("workspace created", map[string]interface{}{"name": name, "slug": slug})
	}
	return slug, nil
}

// openThread creates a fresh thread for this run. Creation failure is soft: a
// locally generated slug is used and the instance creates the thread on the
// first message to it.
func (s *Service) openThread(ctx context.Context, workspaceSlug string, now time.Time, count int) (slug, name string) {
	requested, name := domain.ThreadNaming(now, count)
	created, err := s.Threads.CreateThread(ctx, workspaceSlug, name, requested)
	if err != nil {
		s.Logger.Warn("thread creation failed, using fallback slug", map[string]interface{}{"error": err.Error()})
		return domain.FallbackThreadSlug(), name
	}
	return created, name
}

// uploadArtifacts materializes both report artifacts in an ephemeral directory,
// uploads them into the workspace, and removes the directory unconditionally.
// Upload failure is fatal: an unattached report is not useful to emit.
func (s *Service) uploadArtifacts(ctx context.Context, result domain.FeedResult, summary domain.RunSummary) error {
	jsonDoc, err := BuildJSON(result)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "foxbrief-report-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	jsonPath := filepath.Join(dir, jsonArtifactName)
	mdPath := filepath.Join(dir, mdArtifactName)
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(mdPath, []byte(summary.Markdown), 0o644); err != nil {
		return err
	}

	if err := s.Documents.UploadDocument(ctx, jsonPath, summary.WorkspaceSlug,
		"ThreatFox IOCs (full JSON)", "ThreatFox API daily pull"); err != nil {
		return fmt.Errorf("upload json artifact: %w", err)
	}
	if err := s.Documents.UploadDocument(ctx, mdPath, summary.WorkspaceSlug,
		"ThreatFox report (markdown)", "Generated summary from ThreatFox IOCs"); err != nil {
		return fmt.Errorf("upload markdown artifact: %w", err)
	}
	return nil
}

// recordRun persists the run trace, best effort.
func (s *Service) recordRun(ts time.Time, summary domain.RunSummary) {
	if s.History == nil {
		return
	}
	ok := summary.TurnsOK()
	record := domain.RunRecord{
		Timestamp:     ts,
		WorkspaceSlug: summary.WorkspaceSlug,
		ThreadSlug:    summary.ThreadSlug,
		IOCCount:      summary.IndicatorCount,
		QuestionCount: len(summary.Questions),
		TurnsOK:       ok,
		TurnsFailed:   len(summary.Turns) - ok,
		Status:        "completed",
	}
	if err := s.History.Save(record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}
