package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/foxbrief/internal/domain"
)

// BuildMarkdown renders the analyst-facing summary document. Output is
// deterministic for identical input and clock: frequency tables rank most
// common first with ties in first-encountered order, and the sample table
// escapes pipe characters so the column count survives rendering.
func BuildMarkdown(result domain.FeedResult, days int, now time.Time) string {
	normalized := result.Normalized()
	dateRange := fmt.Sprintf("last %d day(s)", days)
	if days == 1 {
		dateRange = "last 1 day"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# ThreatFox IOCs - %s\n\n", dateRange)
	fmt.Fprintf(&b, "**Generated:** %s UTC\n\n", now.UTC().Format("2006-01-02 15:04:05"))
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Query status:** %s\n", normalized.QueryStatus)
	fmt.Fprintf(&b, "- **Total indicators:** %d\n\n", normalized.Count)

	if len(normalized.Data) > 0 {
		writeFrequencySection(&b, "Top malware families", normalized.Data, domain.IndicatorRecord.MalwareFamily)
		writeFrequencySection(&b, "Top threat types", normalized.Data, domain.IndicatorRecord.ThreatLabel)
	}

	b.WriteString("## Sample IOCs\n\n")
	b.WriteString("| IOC | Malware | Threat type | First seen | Confidence |\n")
	b.WriteString("|-----|---------|-------------|------------|------------|\n")
	sample := normalized.Data
	if len(sample) > domain.SampleIOCRows {
		sample = sample[:domain.SampleIOCRows]
	}
	for _, row := range sample {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			escapePipes(row.IOC),
			escapePipes(sampleMalware(row)),
			escapePipes(row.ThreatType),
			escapePipes(row.FirstSeen),
			escapePipes(row.Confidence()),
		)
	}
	b.WriteString("\nThe full dataset is available in the attached JSON document in this workspace.\n")
	return b.String()
}

// sampleMalware mirrors the summary-table default: printable name or raw
// identifier, empty when neither is set.
func sampleMalware(row domain.IndicatorRecord) string {
	if row.MalwarePrintable != "" {
		return row.MalwarePrintable
	}
	return row.Malware
}

func writeFrequencySection(b *strings.Builder, title string, records []domain.IndicatorRecord, label func(domain.IndicatorRecord) string) {
	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, label(r))
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, fc := range domain.RankByFrequency(labels, domain.TopListSize) {
		fmt.Fprintf(b, "- %s: %d\n", fc.Label, fc.Count)
	}
	b.WriteString("\n")
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// BuildJSON re-serializes the normalized envelope. No transformation beyond
// guaranteeing the three top-level keys and count == len(data).
func BuildJSON(result domain.FeedResult) (string, error) {
	raw, err := json.MarshalIndent(result.Normalized(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
