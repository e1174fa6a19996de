package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/ports"
)

const openaiTimeout = 30 * time.Second

// OpenAIStrategy asks a general-purpose chat-completions endpoint for the 3
// analyst questions. The feed never leaves the machine in full: only a
// condensed statistical summary is sent.
type OpenAIStrategy struct {
	Settings   domain.OpenAISettings
	HTTPClient *http.Client
}

func (s *OpenAIStrategy) Name() string { return "openai" }

// Questions implements ports.QuestionStrategy. Fails immediately when no API
// key is configured so the selector moves on without a network call.
func (s *OpenAIStrategy) Questions(ctx context.Context, req ports.QuestionRequest) ([]string, error) {
	key := strings.TrimSpace(s.Settings.APIKey)
	if key == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", domain.ErrConfig)
	}

	prompt := fmt.Sprintf(
		"Context: %s. Output exactly 3 concise questions an expert security analyst would ask about this data, one per line, numbered 1-3.",
		summarize(req.Result),
	)
	if req.Mission != "" {
		prompt = fmt.Sprintf("%s Tailor the questions to this mission: %s", prompt, req.Mission)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"model": s.Settings.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": 300,
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(s.Settings.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+key)
	httpReq.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openaiTimeout}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: chat completions: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: chat completions: %v", domain.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: chat completions: %s", domain.ErrTransport, resp.Status)
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("%w: chat completions response: %v", domain.ErrTransport, err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: chat completions returned no choices", domain.ErrParse)
	}
	return domain.ParseQuestions(response.Choices[0].Message.Content)
}

// summarize condenses the pull into one line: total count plus the top 5
// malware families over the first 100 records.
func summarize(result domain.FeedResult) string {
	normalized := result.Normalized()
	top := domain.TopMalwareFamilies(normalized.Data, 100, 5)
	parts := make([]string, 0, len(top))
	for _, fc := range top {
		parts = append(parts, fmt.Sprintf("%s(%d)", fc.Label, fc.Count))
	}
	return fmt.Sprintf("ThreatFox pull: %d IOCs. Top malware: %s", normalized.Count, strings.Join(parts, ", "))
}

var _ ports.QuestionStrategy = (*OpenAIStrategy)(nil)
