package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// enumMarker matches leading enumeration markers like "1.", "2)", "3 -".
var enumMarker = regexp.MustCompile(`(?i)^\d+[.)\-\s]+\s*(.+)$`)

// ParseQuestions extracts exactly 3 questions from a model reply using a
// line-oriented parser. Enumeration markers are stripped; lines without a
// marker are kept as-is. Parsing stops as soon as 3 questions are collected.
// Fewer than 3 non-empty lines is a parse failure, which advances the
// strategy fallback chain.
func ParseQuestions(text string) ([]string, error) {
	var questions []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := enumMarker.FindStringSubmatch(line); m != nil {
			questions = append(questions, strings.TrimSpace(m[1]))
		} else {
			questions = append(questions, line)
		}
		if len(questions) == 3 {
			return questions, nil
		}
	}
	return nil, fmt.Errorf("%w: got %d questions, want 3", ErrParse, len(questions))
}

var templateQuestions = []string{
	"What are the most critical IOCs in this dataset and why?",
	"Which malware families appear most often and what should we prioritize for blocking?",
	"Summarize key recommendations for our SOC based on this ThreatFox pull.",
}

// TemplateAnalystQuestions returns the fixed analyst questions. When a mission
// is supplied each question is rewritten to reference it inline.
func TemplateAnalystQuestions(mission string) []string {
	out := make([]string, 0, len(templateQuestions))
	for _, q := range templateQuestions {
		if mission != "" {
			q = fmt.Sprintf("%s Focus on this mission: %s.", q, mission)
		}
		out = append(out, q)
	}
	return out
}
