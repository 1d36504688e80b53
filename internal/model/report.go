// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Defaults shown when the report view has nothing to display.
const (
	NoReportText      = "No report available"
	NoSuggestionsText = "No suggestions available"
)

// MetricMax is the top of the 0 to 10 scale the report service scores on.
const MetricMax = 10.0

// Metrics are the three scores produced by the report service.
type Metrics struct {
	Stress     float64 `json:"stress"`
	Depression float64 `json:"depression"`
	Anxiety    float64 `json:"anxiety"`
}

// ReportPayload is handed from the chat view to the report view unchanged.
type ReportPayload struct {
	Report      string  `json:"report"`
	Metrics     Metrics `json:"metrics"`
	Suggestions string  `json:"suggestions"`
}

// ReportOrDefault returns the payload to render, substituting placeholder
// text for anything missing. A nil payload yields all defaults.
func ReportOrDefault(p *ReportPayload) ReportPayload {
	if p == nil {
		return ReportPayload{Report: NoReportText, Suggestions: NoSuggestionsText}
	}
	out := *p
	if out.Report == "" {
		out.Report = NoReportText
	}
	if out.Suggestions == "" {
		out.Suggestions = NoSuggestionsText
	}
	return out
}

// Severity is the band a metric score falls into.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityModerate
	SeverityHigh
)

// String returns the label shown next to a metric.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityModerate:
		return "Moderate"
	default:
		return "High"
	}
}

// SeverityOf bands a 0 to 10 score: up to 3 is low, up to 6 moderate.
func SeverityOf(score float64) Severity {
	switch {
	case score <= 3:
		return SeverityLow
	case score <= 6:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}
