package domain

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder credential values shipped in .env.example; treated as unset.
const (
	PlaceholderAuthKey = "your-auth-key-here"
	PlaceholderAPIKey  = "your-api-key-here"
)

// Config mirrors ~/.foxbrief/config.yaml with credentials overlaid from the
// environment. It is loaded once at process start and immutable for the run.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	ThreatFox           ThreatFoxSettings `yaml:"threatfox"`
	ChatApp             ChatAppSettings   `yaml:"anythingllm"`
	OpenAI              OpenAISettings    `yaml:"openai"`
	Report              ReportSettings    `yaml:"report"`
}

// ThreatFoxSettings configures the feed client. The auth key is sourced from
// THREATFOX_AUTH_KEY only and never written back to the config file.
type ThreatFoxSettings struct {
	Endpoint string `yaml:"endpoint"`
	Days     int    `yaml:"days"`
	AuthKey  string `yaml:"-"`
}

// ChatAppSettings configures the AnythingLLM instance the report is pushed to.
type ChatAppSettings struct {
	BaseURL   string `yaml:"base_url"`
	Workspace string `yaml:"workspace"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
}

// OpenAISettings configures the optional external question-generation endpoint.
type OpenAISettings struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"`
}

// ReportSettings captures report workflow toggles.
type ReportSettings struct {
	UseLLMQuestions bool `yaml:"use_llm_questions"`
	SettleSeconds   int  `yaml:"settle_seconds"`
}

// SettleDelay is the pause between document upload and the first chat turn,
// giving the remote instance time to embed the uploaded documents.
func (r ReportSettings) SettleDelay() time.Duration {
	return time.Duration(r.SettleSeconds) * time.Second
}

// ValidateCredentials checks that both required credentials are set and are not
// the placeholder values. It runs before any network call is issued.
func (c Config) ValidateCredentials() error {
	if key := strings.TrimSpace(c.ThreatFox.AuthKey); key == "" || key == PlaceholderAuthKey {
		return fmt.Errorf("%w: THREATFOX_AUTH_KEY not set or still placeholder", ErrConfig)
	}
	if key := strings.TrimSpace(c.ChatApp.APIKey); key == "" || key == PlaceholderAPIKey {
		return fmt.Errorf("%w: ANYTHINGLLM_API_KEY not set or still placeholder", ErrConfig)
	}
	return nil
}
