// Package questions contains the analyst-question generation strategies, in
// fallback priority order: workspace completion, external completion, fixed
// templates.
package questions

import (
	"context"
	"fmt"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

const questionGenPrompt = "Using only the ThreatFox IOC data in this workspace, " +
	"output exactly 3 concise questions an expert security analyst would ask, " +
	"one per line, numbered 1-3."

// Completer is the slice of the chat-app client the workspace strategy needs.
type Completer interface {
	ChatCompletion(ctx context.Context, workspaceSlug, prompt string) (string, error)
}

// WorkspaceStrategy asks the workspace's own document-aware model for the 3
// analyst questions. Preferred when LLM questions are enabled because the
// model has the uploaded report in context.
type WorkspaceStrategy struct {
	Completer Completer
}

func (s *WorkspaceStrategy) Name() string { return "workspace" }

// Questions implements ports.QuestionStrategy.
func (s *WorkspaceStrategy) Questions(ctx context.Context, req ports.QuestionRequest) ([]string, error) {
	prompt := questionGenPrompt
	if req.Mission != "" {
		prompt = fmt.Sprintf("%s Tailor the questions to this mission: %s", prompt, req.Mission)
	}
	text, err := s.Completer.ChatCompletion(ctx, req.WorkspaceSlug, prompt)
	if err != nil {
		return nil, err
	}
	return domain.ParseQuestions(text)
}

var _ ports.QuestionStrategy = (*WorkspaceStrategy)(nil)
