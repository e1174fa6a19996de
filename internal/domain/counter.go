package domain

import "sort"

// FrequencyCount pairs a label with how often it occurred.
type FrequencyCount struct {
	Label string
	Count int
}

// RankByFrequency counts label occurrences and returns at most top entries,
// most common first. Ties keep first-encountered order, so the ranking is
// stable across runs for identical input.
func RankByFrequency(labels []string, top int) []FrequencyCount {
	counts := make(map[string]int, len(labels))
	order := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, seen := counts[label]; !seen {
			order[label] = i
		}
		counts[label]++
	}

	ranked := make([]FrequencyCount, 0, len(counts))
	for label, n := range counts {
		ranked = append(ranked, FrequencyCount{Label: label, Count: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Label] < order[ranked[j].Label]
	})

	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

// TopMalwareFamilies ranks malware families over at most the first limit
// records. Used for the condensed summary fed to the external question
// strategy.
func TopMalwareFamilies(records []IndicatorRecord, limit, top int) []FrequencyCount {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, r.MalwareFamily())
	}
	return RankByFrequency(labels, top)
}
