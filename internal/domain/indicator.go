// Package domain defines core business entities and value objects for foxbrief.
//
// This file contains the ThreatFox feed entities. The domain layer is independent
// of infrastructure concerns and represents pure business logic and data structures.
package domain

import (
	"encoding/json"
	"strconv"
)

// IndicatorRecord is a single IOC row as returned by the ThreatFox get_iocs query.
// Records are immutable once fetched.
type IndicatorRecord struct {
	ID               string   `json:"id,omitempty"`
	IOC              string   `json:"ioc"`
	IOCType          string   `json:"ioc_type,omitempty"`
	ThreatType       string   `json:"threat_type,omitempty"`
	ThreatTypeDesc   string   `json:"threat_type_desc,omitempty"`
	Malware          string   `json:"malware,omitempty"`
	MalwarePrintable string   `json:"malware_printable,omitempty"`
	FirstSeen        string   `json:"first_seen,omitempty"`
	LastSeen         string   `json:"last_seen,omitempty"`
	ConfidenceLevel  *int     `json:"confidence_level,omitempty"`
	Reference        string   `json:"reference,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// MalwareFamily returns the printable malware name, the raw identifier, or "Unknown".
func (r IndicatorRecord) MalwareFamily() string {
	if r.MalwarePrintable != "" {
		return r.MalwarePrintable
	}
	if r.Malware != "" {
		return r.Malware
	}
	return "Unknown"
}

// ThreatLabel returns the threat type, its description, or "Unknown".
func (r IndicatorRecord) ThreatLabel() string {
	if r.ThreatType != "" {
		return r.ThreatType
	}
	if r.ThreatTypeDesc != "" {
		return r.ThreatTypeDesc
	}
	return "Unknown"
}

// Confidence renders the confidence level for tabular output, empty when absent.
func (r IndicatorRecord) Confidence() string {
	if r.ConfidenceLevel == nil {
		return ""
	}
	return strconv.Itoa(*r.ConfidenceLevel)
}

// FeedResult is the envelope around a ThreatFox query. When QueryStatus is not
// "ok" the Data slice is empty and ErrorPayload may carry the upstream error body.
type FeedResult struct {
	QueryStatus  string            `json:"query_status"`
	Count        int               `json:"count"`
	Data         []IndicatorRecord `json:"data"`
	ErrorPayload json.RawMessage   `json:"-"`
}

// OK reports whether the upstream query succeeded.
func (f FeedResult) OK() bool {
	return f.QueryStatus == "ok"
}

// Normalized returns a copy with Count forced to len(Data) and a non-nil Data
// slice, so the serialized envelope always carries the three top-level keys.
func (f FeedResult) Normalized() FeedResult {
	out := f
	if out.Data == nil {
		out.Data = []IndicatorRecord{}
	}
	out.Count = len(out.Data)
	return out
}

// ErrorDetail returns the upstream error payload truncated for diagnostics.
func (f FeedResult) ErrorDetail() string {
	const maxLen = 500
	s := string(f.ErrorPayload)
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
