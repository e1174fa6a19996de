package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	Config    domain.Config
	Directory ports.WorkspaceDirectory
	History   ports.HistoryRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	checks = append(checks, credentialCheck("ThreatFox auth key", s.Config.ThreatFox.AuthKey, domain.PlaceholderAuthKey))
	checks = append(checks, credentialCheck("AnythingLLM API key", s.Config.ChatApp.APIKey, domain.PlaceholderAPIKey))

	if key := strings.TrimSpace(s.Config.OpenAI.APIKey); key == "" {
		checks = append(checks, warn("OpenAI API key", "not set; external question strategy disabled"))
	} else {
		checks = append(checks, ok("OpenAI API key", "present"))
	}

	if s.Directory != nil {
		if _, err := s.Directory.ResolveWorkspace(ctx, ""); err != nil && !errors.Is(err, domain.ErrWorkspaceNotFound) {
			checks = append(checks, fail("AnythingLLM instance", fmt.Sprintf("unreachable at %s: %v", s.Config.ChatApp.BaseURL, err)))
		} else {
			checks = append(checks, ok("AnythingLLM instance", fmt.Sprintf("reachable at %s", s.Config.ChatApp.BaseURL)))
		}
	}

	if s.History != nil {
		if _, err := s.History.Records(1, ""); err != nil {
			checks = append(checks, warn("Run history", err.Error()))
		} else {
			checks = append(checks, ok("Run history", "store readable"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func credentialCheck(name, value, placeholder string) domain.HealthCheck {
	switch strings.TrimSpace(value) {
	case "":
		return fail(name, "not set")
	case placeholder:
		return fail(name, "still the placeholder value")
	default:
		return ok(name, "present")
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
