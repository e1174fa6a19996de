package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/foxbrief/internal/domain"
)

func intPtr(n int) *int { return &n }

func sampleResult() domain.FeedResult {
	return domain.FeedResult{
		QueryStatus: "ok",
		Data: []domain.IndicatorRecord{
			{IOC: "1.2.3.4:443", MalwarePrintable: "Cobalt Strike", ThreatType: "botnet_cc", FirstSeen: "2026-08-30 11:00:00 UTC", ConfidenceLevel: intPtr(75)},
			{IOC: "evil.example.com", MalwarePrintable: "Cobalt Strike", ThreatType: "botnet_cc", FirstSeen: "2026-08-30 12:00:00 UTC", ConfidenceLevel: intPtr(50)},
			{IOC: "bad.example.net", Malware: "win.lumma", ThreatType: "payload_delivery", FirstSeen: "2026-08-31 01:00:00 UTC"},
			{IOC: "10.0.0.1:8080"},
		},
	}
}

func TestBuildMarkdownDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	first := BuildMarkdown(sampleResult(), 1, now)
	second := BuildMarkdown(sampleResult(), 1, now)
	assert.Equal(t, first, second, "identical input and clock must produce identical output")
}

func TestBuildMarkdownContent(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	md := BuildMarkdown(sampleResult(), 1, now)

	assert.Contains(t, md, "# ThreatFox IOCs - last 1 day")
	assert.Contains(t, md, "**Generated:** 2026-08-31 10:00:00 UTC")
	assert.Contains(t, md, "- **Query status:** ok")
	assert.Contains(t, md, "- **Total indicators:** 4")

	// Frequency tables: most common first, Unknown default applied.
	assert.Contains(t, md, "- Cobalt Strike: 2")
	assert.Contains(t, md, "- win.lumma: 1")
	assert.Contains(t, md, "- Unknown: 1")
	assert.Contains(t, md, "- botnet_cc: 2")

	// Sample table rows carry field-specific defaults: empty confidence and
	// first-seen render as empty cells.
	assert.Contains(t, md, "| 1.2.3.4:443 | Cobalt Strike | botnet_cc | 2026-08-30 11:00:00 UTC | 75 |")
	assert.Contains(t, md, "| 10.0.0.1:8080 |  |  |  |  |")
}

func TestBuildMarkdownDaysPlural(t *testing.T) {
	now := time.Now()
	md := BuildMarkdown(domain.FeedResult{QueryStatus: "ok"}, 7, now)
	assert.Contains(t, md, "# ThreatFox IOCs - last 7 day(s)")
}

func TestBuildMarkdownEscapesPipes(t *testing.T) {
	result := domain.FeedResult{
		QueryStatus: "ok",
		Data: []domain.IndicatorRecord{
			{IOC: "a|b", MalwarePrintable: "Fam|ily", ThreatType: "type|x", FirstSeen: "2026|01"},
		},
	}
	md := BuildMarkdown(result, 1, time.Now())
	assert.Contains(t, md, `| a\|b | Fam\|ily | type\|x | 2026\|01 |  |`)

	// Every row of the sample table must keep the 5-column shape.
	for _, line := range strings.Split(md, "\n") {
		if !strings.HasPrefix(line, "| ") {
			continue
		}
		cells := strings.Split(strings.ReplaceAll(line, `\|`, ""), "|")
		assert.Len(t, cells, 7, "row %q has the wrong column count", line)
	}
}

func TestBuildMarkdownTruncatesSample(t *testing.T) {
	var records []domain.IndicatorRecord
	for i := 0; i < 40; i++ {
		records = append(records, domain.IndicatorRecord{IOC: "host.example.com"})
	}
	md := BuildMarkdown(domain.FeedResult{QueryStatus: "ok", Data: records}, 1, time.Now())
	rows := strings.Count(md, "| host.example.com |")
	assert.Equal(t, domain.SampleIOCRows, rows)
}

func TestBuildMarkdownTruncatesFrequencyTables(t *testing.T) {
	var records []domain.IndicatorRecord
	for i := 0; i < 15; i++ {
		records = append(records, domain.IndicatorRecord{
			IOC:              "x",
			MalwarePrintable: string(rune('A' + i)),
		})
	}
	md := BuildMarkdown(domain.FeedResult{QueryStatus: "ok", Data: records}, 1, time.Now())
	section := md[strings.Index(md, "### Top malware families"):strings.Index(md, "### Top threat types")]
	assert.Equal(t, domain.TopListSize, strings.Count(section, "\n- "))
}

func TestBuildJSONCountInvariant(t *testing.T) {
	out, err := BuildJSON(sampleResult())
	require.NoError(t, err)

	var envelope struct {
		QueryStatus string            `json:"query_status"`
		Count       int               `json:"count"`
		Data        []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, "ok", envelope.QueryStatus)
	assert.Equal(t, len(envelope.Data), envelope.Count)
	assert.Equal(t, 4, envelope.Count)
}

func TestBuildJSONEmptyData(t *testing.T) {
	out, err := BuildJSON(domain.FeedResult{QueryStatus: "ok"})
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	for _, key := range []string{"query_status", "count", "data"} {
		assert.Contains(t, envelope, key)
	}
	assert.JSONEq(t, `[]`, string(envelope["data"]), "data must be a list even when empty")
}
