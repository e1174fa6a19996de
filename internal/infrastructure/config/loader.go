package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/pkg/filesystem"
	"github.com/doeshing/foxbrief/internal/ports"
)

// FileLoader loads YAML configuration from ~/.foxbrief/config.yaml (overridable
// via FOXBRIEF_CONFIG) and overlays environment variables on top. Credentials
// only ever come from the environment (or a .env file in the working
// directory); they are never written to the config file.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	// Best effort: a missing .env is fine, env vars may already be exported.
	_ = godotenv.Load()

	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := writeDefault(path, cfg); err != nil {
			return domain.Config{}, err
		}
	case err != nil:
		return domain.Config{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, err
		}
	}

	return applyEnv(hydrateDefaults(cfg)), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("FOXBRIEF_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".foxbrief", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		ThreatFox: domain.ThreatFoxSettings{
			Endpoint: domain.DefaultThreatFoxEndpoint,
			Days:     domain.DefaultDays,
		},
		ChatApp: domain.ChatAppSettings{
			BaseURL:   domain.DefaultChatAppBaseURL,
			Workspace: domain.DefaultWorkspaceName,
		},
		OpenAI: domain.OpenAISettings{
			BaseURL: domain.DefaultOpenAIBaseURL,
			Model:   domain.DefaultOpenAIModel,
		},
		Report: domain.ReportSettings{
			SettleSeconds: domain.DefaultSettleSeconds,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ThreatFox.Endpoint == "" {
		cfg.ThreatFox.Endpoint = domain.DefaultThreatFoxEndpoint
	}
	if cfg.ThreatFox.Days == 0 {
		cfg.ThreatFox.Days = domain.DefaultDays
	}
	if cfg.ChatApp.BaseURL == "" {
		cfg.ChatApp.BaseURL = domain.DefaultChatAppBaseURL
	}
	if cfg.ChatApp.Workspace == "" {
		cfg.ChatApp.Workspace = domain.DefaultWorkspaceName
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = domain.DefaultOpenAIBaseURL
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = domain.DefaultOpenAIModel
	}
	return cfg
}

func applyEnv(cfg domain.Config) domain.Config {
	cfg.ThreatFox.AuthKey = strings.TrimSpace(os.Getenv("THREATFOX_AUTH_KEY"))
	cfg.ChatApp.APIKey = strings.TrimSpace(os.Getenv("ANYTHINGLLM_API_KEY"))
	cfg.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if v := strings.TrimSpace(os.Getenv("THREATFOX_DAYS")); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.ThreatFox.Days = days
		}
	}
	if v := strings.TrimSpace(os.Getenv("ANYTHINGLLM_BASE_URL")); v != "" {
		cfg.ChatApp.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("ANYTHINGLLM_WORKSPACE")); v != "" {
		cfg.ChatApp.Workspace = v
	}
	if v := strings.TrimSpace(os.Getenv("ANYTHINGLLM_MODEL")); v != "" {
		cfg.ChatApp.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" {
		cfg.OpenAI.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("USE_LLM_QUESTIONS"))); v != "" {
		cfg.Report.UseLLMQuestions = v == "1" || v == "true" || v == "yes"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
