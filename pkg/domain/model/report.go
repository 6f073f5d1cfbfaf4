package model

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/google/uuid"
)

// MaxSummaryLength is the maximum stored length of a report summary,
// including the ellipsis marker appended on truncation.
const MaxSummaryLength = 2000

// ReportID is a UUID-based identifier for Report
type ReportID string

// NewReportID generates a new UUID v4 ReportID
func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// Report is the structured triage output for a patient. At most one live
// report exists per patient: synthesis replaces any prior report.
type Report struct {
	ID        ReportID
	PatientID types.PatientID
	RiskLevel types.RiskLevel
	Summary   string `masq:"secret"`
	CreatedAt time.Time
}

// The two-field report format is a minimal ad hoc wire protocol spoken by
// the triage models. Model drift from the exact format is an expected,
// handled failure mode: an unparsable risk line defaults to Medium, and a
// missing Summary field falls back to the whole response body.
var (
	riskLinePattern    = regexp.MustCompile(`(?im)^risk level:\s*(low|medium|high)\b`)
	summaryPattern     = regexp.MustCompile(`(?is)summary:\s*(.*)`)
	leadingRiskPattern = regexp.MustCompile(`(?i)^risk level:.*\n?`)
)

// ParseReportText extracts the risk level and summary from free-form triage
// model output. It never fails: malformed output degrades to Medium risk
// with the raw text as summary.
func ParseReportText(text string) (types.RiskLevel, string) {
	riskLevel := types.RiskMedium
	if m := riskLinePattern.FindStringSubmatch(text); m != nil {
		if parsed, err := types.ParseRiskLevel(m[1]); err == nil {
			riskLevel = parsed
		}
	}

	var summary string
	if m := summaryPattern.FindStringSubmatch(text); m != nil {
		summary = strings.TrimSpace(m[1])
	} else {
		summary = strings.TrimSpace(leadingRiskPattern.ReplaceAllString(text, ""))
	}

	return riskLevel, TruncateSummary(summary)
}

// TruncateSummary caps a summary at MaxSummaryLength bytes, marking
// truncation with a trailing ellipsis. The cut backs off to a rune
// boundary so multibyte text (Urdu script summaries) stays valid UTF-8;
// Firestore rejects strings that are not.
func TruncateSummary(s string) string {
	if len(s) <= MaxSummaryLength {
		return s
	}
	cut := MaxSummaryLength - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
