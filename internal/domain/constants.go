package domain

// Defaults applied by the config loader when the file or environment leaves a
// value unset.
const (
	DefaultThreatFoxEndpoint = "https://threatfox-api.abuse.ch/api/v1/"
	DefaultChatAppBaseURL    = "http://localhost:3001"
	DefaultWorkspaceName     = "ThreatFox Daily"
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultDays              = 1
	DefaultSettleSeconds     = 5
)

// ClampFeedDays bounds the lookback window to the 1..7 range the feed API
// accepts. Applied once by the orchestrator so the rendered report and the
// feed query agree on the window.
func ClampFeedDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > 7 {
		return 7
	}
	return days
}

// Report shape constants.
const (
	SampleIOCRows = 15
	TopListSize   = 10
)

// SummaryQuestion closes every report conversation after the analyst questions.
const SummaryQuestion = "Summarize this ThreatFox pull in at most 3 bullets."
