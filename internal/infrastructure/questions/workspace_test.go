package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

type stubCompleter struct {
	reply     string
	err       error
	gotSlug   string
	gotPrompt string
}

func (s *stubCompleter) ChatCompletion(_ context.Context, workspaceSlug, prompt string) (string, error) {
	s.gotSlug = workspaceSlug
	s.gotPrompt = prompt
	return s.reply, s.err
}

func TestWorkspaceStrategyQuestions(t *testing.T) {
	completer := &stubCompleter{reply: "1. What changed?\n2. Which families grew?\n3. Any new C2s?"}
	strategy := &WorkspaceStrategy{Completer: completer}

	got, err := strategy.Questions(context.Background(), ports.QuestionRequest{WorkspaceSlug: "threatfox-daily"})
	if err != nil {
		t.Fatalf("Questions() error = %v", err)
	}
	want := []string{"What changed?", "Which families grew?", "Any new C2s?"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Questions mismatch (-want +got):\n%s", diff)
	}
	if completer.gotSlug != "threatfox-daily" {
		t.Errorf("workspace slug = %q", completer.gotSlug)
	}
	if strings.Contains(completer.gotPrompt, "mission") {
		t.Errorf("prompt mentions a mission that was never given: %q", completer.gotPrompt)
	}
}

func TestWorkspaceStrategyAppendsMission(t *testing.T) {
	completer := &stubCompleter{reply: "1. A\n2. B\n3. C"}
	strategy := &WorkspaceStrategy{Completer: completer}

	if _, err := strategy.Questions(context.Background(), ports.QuestionRequest{Mission: "ransomware triage"}); err != nil {
		t.Fatalf("Questions() error = %v", err)
	}
	if !strings.Contains(completer.gotPrompt, "Tailor the questions to this mission: ransomware triage") {
		t.Errorf("prompt does not carry the mission: %q", completer.gotPrompt)
	}
}

func TestWorkspaceStrategyPropagatesCompletionError(t *testing.T) {
	completer := &stubCompleter{err: fmt.Errorf("%w: POST /api/v1/openai/chat/completions: 503", domain.ErrTransport)}
	strategy := &WorkspaceStrategy{Completer: completer}

	_, err := strategy.Questions(context.Background(), ports.QuestionRequest{})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("Questions() error = %v, want ErrTransport", err)
	}
}

func TestWorkspaceStrategyRejectsShortReplies(t *testing.T) {
	completer := &stubCompleter{reply: "1. Only one question here"}
	strategy := &WorkspaceStrategy{Completer: completer}

	_, err := strategy.Questions(context.Background(), ports.QuestionRequest{})
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("Questions() error = %v, want ErrParse", err)
	}
}
