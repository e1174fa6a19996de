package doctor

import (
	"context"
	"fmt"
	"testing"

	"github.com/doeshing/foxbrief/internal/domain"
)

type stubDirectory struct {
	err error
}

func (s stubDirectory) ResolveWorkspace(context.Context, string) (string, error) {
	return "", s.err
}

func (s stubDirectory) CreateWorkspace(context.Context, string) (string, error) {
	return "", nil
}

func (s stubDirectory) GetOrCreateWorkspace(context.Context, string) (string, bool, error) {
	return "", false, s.err
}

type stubHistory struct {
	err error
}

func (s stubHistory) Save(domain.RunRecord) error { return s.err }

func (s stubHistory) Records(int, string) ([]domain.RunRecord, error) {
	return nil, s.err
}

func configured() domain.Config {
	return domain.Config{
		ThreatFox: domain.ThreatFoxSettings{AuthKey: "tf-key"},
		ChatApp:   domain.ChatAppSettings{APIKey: "llm-key", BaseURL: "http://localhost:3001"},
	}
}

func checkByName(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q in %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestRunAllHealthy(t *testing.T) {
	svc := &Service{Config: configured(), Directory: stubDirectory{}, History: stubHistory{}}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Healthy() {
		t.Fatalf("report not healthy: %+v", report.Checks)
	}
	// No OpenAI key is a warning, never a failure.
	if got := checkByName(t, report, "OpenAI API key").Status; got != domain.HealthWarn {
		t.Errorf("OpenAI check = %v, want warn", got)
	}
}

func TestRunPlaceholderCredentialFails(t *testing.T) {
	cfg := configured()
	cfg.ThreatFox.AuthKey = domain.PlaceholderAuthKey
	svc := &Service{Config: cfg, Directory: stubDirectory{}, History: stubHistory{}}

	report, _ := svc.Run(context.Background())
	if report.Healthy() {
		t.Fatal("placeholder credential must fail the report")
	}
	if got := checkByName(t, report, "ThreatFox auth key").Status; got != domain.HealthError {
		t.Errorf("ThreatFox check = %v, want error", got)
	}
}

func TestRunEmptyDirectoryIsReachable(t *testing.T) {
	svc := &Service{
		Config:    configured(),
		Directory: stubDirectory{err: fmt.Errorf("%w: no workspaces", domain.ErrWorkspaceNotFound)},
		History:   stubHistory{},
	}

	report, _ := svc.Run(context.Background())
	if got := checkByName(t, report, "AnythingLLM instance").Status; got != domain.HealthOK {
		t.Errorf("instance check = %v, an empty directory still proves reachability", got)
	}
}

func TestRunUnreachableInstanceFails(t *testing.T) {
	svc := &Service{
		Config:    configured(),
		Directory: stubDirectory{err: fmt.Errorf("%w: connection refused", domain.ErrTransport)},
		History:   stubHistory{},
	}

	report, _ := svc.Run(context.Background())
	if report.Healthy() {
		t.Fatal("unreachable instance must fail the report")
	}
	if got := checkByName(t, report, "AnythingLLM instance").Status; got != domain.HealthError {
		t.Errorf("instance check = %v, want error", got)
	}
}

func TestRunHistoryErrorIsWarning(t *testing.T) {
	svc := &Service{
		Config:    configured(),
		Directory: stubDirectory{},
		History:   stubHistory{err: fmt.Errorf("database locked")},
	}

	report, _ := svc.Run(context.Background())
	if !report.Healthy() {
		t.Fatal("a history warning must not fail the report")
	}
	if got := checkByName(t, report, "Run history").Status; got != domain.HealthWarn {
		t.Errorf("history check = %v, want warn", got)
	}
}
