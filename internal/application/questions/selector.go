// Package questions selects analyst questions by running the configured
// strategies in priority order.
package questions

import (
	"context"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

// Selector tries each strategy in order; the first one to return a full set
// of questions wins. Strategy failures are soft: they are logged and the next
// strategy runs.
type Selector struct {
	Strategies []ports.QuestionStrategy
	Logger     ports.Logger
}

// Generate implements ports.QuestionSelector. It cannot come back empty: if
// every strategy fails (which the template strategy prevents in practice) the
// fixed templates are used directly.
func (s *Selector) Generate(ctx context.Context, req ports.QuestionRequest) []string {
	for _, strategy := range s.Strategies {
		qs, err := strategy.Questions(ctx, req)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Debug("question strategy failed", map[string]interface{}{
					"strategy": strategy.Name(),
					"error":    err.Error(),
				})
			}
			continue
		}
		if len(qs) == 3 {
			if s.Logger != nil {
				s.Logger.Info("questions generated", map[string]interface{}{"strategy": strategy.Name()})
			}
			return qs
		}
	}
	return domain.TemplateAnalystQuestions(req.Mission)
}

var _ ports.QuestionSelector = (*Selector)(nil)
