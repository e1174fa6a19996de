package questions

import (
	"context"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

// TemplateStrategy returns the fixed analyst questions. It never fails, so it
// terminates every fallback chain.
type TemplateStrategy struct{}

func (TemplateStrategy) Name() string { return "template" }

// Questions implements ports.QuestionStrategy.
func (TemplateStrategy) Questions(_ context.Context, req ports.QuestionRequest) ([]string, error) {
	return domain.TemplateAnalystQuestions(req.Mission), nil
}

var _ ports.QuestionStrategy = TemplateStrategy{}
