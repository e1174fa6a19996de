package app

import (
	"context"

	"github.com/doeshing/foxbrief/internal/application/doctor"
	appquestions "github.com/doeshing/foxbrief/internal/application/questions"
	"github.com/doeshing/foxbrief/internal/application/report"
	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/infrastructure/anythingllm"
	"github.com/doeshing/foxbrief/internal/infrastructure/config"
	"github.com/doeshing/foxbrief/internal/infrastructure/history"
	"github.com/doeshing/foxbrief/internal/infrastructure/questions"
	"github.com/doeshing/foxbrief/internal/infrastructure/threatfox"
	"github.com/doeshing/foxbrief/internal/pkg/logger"
	"github.com/doeshing/foxbrief/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	ReportService *report.Service
	DoctorService *doctor.Service
	FeedClient    ports.FeedClient
	HistoryStore  ports.HistoryRepository
	Logger        ports.Logger

	cfg      domain.Config
	chatApp  *anythingllm.Client
	selector *appquestions.Selector
	std      *logger.StdLogger
	llmOn    bool
}

// BuildContainer constructs the dependency graph. Configuration is loaded once
// here and passed by value into the services.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	feed := threatfox.NewClient(cfg.ThreatFox, nil)
	chatApp := anythingllm.NewClient(cfg.ChatApp)
	historyStore := history.NewSQLiteStore()

	// The always-available template strategy closes the fallback chain; the
	// LLM strategies only join when explicitly enabled.
	selector := &appquestions.Selector{
		Strategies: []ports.QuestionStrategy{questions.TemplateStrategy{}},
		Logger:     log,
	}

	reportService := &report.Service{
		Config:    cfg,
		Feed:      feed,
		Directory: chatApp,
		Threads:   chatApp,
		Documents: chatApp,
		Chat:      chatApp,
		Questions: selector,
		History:   historyStore,
		Logger:    log,
	}

	doctorService := &doctor.Service{
		Config:    cfg,
		Directory: chatApp,
		History:   historyStore,
	}

	container := &Container{
		ReportService: reportService,
		DoctorService: doctorService,
		FeedClient:    feed,
		HistoryStore:  historyStore,
		Logger:        log,
		cfg:           cfg,
		chatApp:       chatApp,
		selector:      selector,
		std:           log,
	}
	if cfg.Report.UseLLMQuestions {
		container.EnableLLMQuestions()
	}
	return container, nil
}

// EnableLLMQuestions prepends the workspace and external completion strategies
// to the question fallback chain, in priority order. No-op when they are
// already active.
func (c *Container) EnableLLMQuestions() {
	if c.llmOn || c.selector == nil {
		return
	}
	c.llmOn = true
	c.selector.Strategies = append([]ports.QuestionStrategy{
		&questions.WorkspaceStrategy{Completer: c.chatApp},
		&questions.OpenAIStrategy{Settings: c.cfg.OpenAI},
	}, c.selector.Strategies...)
}

// SetVerbose toggles debug logging after the container is built, for flags
// parsed later than construction.
func (c *Container) SetVerbose(verbose bool) {
	if c.std != nil {
		c.std.SetVerbose(verbose)
	}
}
