package model_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestParseReportText(t *testing.T) {
	t.Run("well formed output", func(t *testing.T) {
		risk, summary := model.ParseReportText("Risk Level: High\nSummary: Patient reports persistent suicidal ideation.")
		gt.Value(t, risk).Equal(types.RiskHigh)
		gt.Value(t, summary).Equal("Patient reports persistent suicidal ideation.")
	})

	t.Run("risk level is case-insensitive", func(t *testing.T) {
		risk, _ := model.ParseReportText("risk level: low\nSummary: Stable presentation.")
		gt.Value(t, risk).Equal(types.RiskLow)
	})

	t.Run("risk line not at start of text", func(t *testing.T) {
		risk, _ := model.ParseReportText("Clinical Note\nRisk Level: High\nSummary: Acute distress.")
		gt.Value(t, risk).Equal(types.RiskHigh)
	})

	t.Run("missing risk line defaults to Medium", func(t *testing.T) {
		risk, summary := model.ParseReportText("Summary: Patient is anxious but cooperative.")
		gt.Value(t, risk).Equal(types.RiskMedium)
		gt.Value(t, summary).Equal("Patient is anxious but cooperative.")
	})

	t.Run("risk token mentioned mid-line is not anchored", func(t *testing.T) {
		risk, _ := model.ParseReportText("The Risk Level: High marker appears in prose\nSummary: x")
		gt.Value(t, risk).Equal(types.RiskMedium)
	})

	t.Run("missing summary falls back to text minus risk line", func(t *testing.T) {
		risk, summary := model.ParseReportText("Risk Level: Low\nPatient presented calmly with no acute concerns.")
		gt.Value(t, risk).Equal(types.RiskLow)
		gt.Value(t, summary).Equal("Patient presented calmly with no acute concerns.")
	})

	t.Run("summary captures multi-line tail", func(t *testing.T) {
		_, summary := model.ParseReportText("Risk Level: Medium\nSummary: Line one.\nLine two.")
		gt.Value(t, summary).Equal("Line one.\nLine two.")
	})

	t.Run("garbage text degrades to Medium with raw summary", func(t *testing.T) {
		risk, summary := model.ParseReportText("I cannot comply with this request.")
		gt.Value(t, risk).Equal(types.RiskMedium)
		gt.Value(t, summary).Equal("I cannot comply with this request.")
	})
}

func TestTruncateSummary(t *testing.T) {
	t.Run("short summary unchanged", func(t *testing.T) {
		gt.Value(t, model.TruncateSummary("short")).Equal("short")
	})

	t.Run("exactly at cap unchanged", func(t *testing.T) {
		s := strings.Repeat("a", model.MaxSummaryLength)
		gt.Value(t, model.TruncateSummary(s)).Equal(s)
	})

	t.Run("over cap truncates to cap with ellipsis", func(t *testing.T) {
		s := strings.Repeat("a", model.MaxSummaryLength+1)
		got := model.TruncateSummary(s)
		gt.Value(t, len(got)).Equal(model.MaxSummaryLength)
		gt.Bool(t, strings.HasSuffix(got, "...")).True()
		gt.Value(t, got[:model.MaxSummaryLength-3]).Equal(strings.Repeat("a", model.MaxSummaryLength-3))
	})

	t.Run("multibyte summary stays valid UTF-8", func(t *testing.T) {
		// Each Urdu character is 2 bytes, so a byte-offset cut would land
		// mid-rune.
		s := strings.Repeat("م", model.MaxSummaryLength)
		got := model.TruncateSummary(s)
		gt.Bool(t, utf8.ValidString(got)).True()
		gt.Bool(t, len(got) <= model.MaxSummaryLength).True()
		gt.Bool(t, strings.HasSuffix(got, "...")).True()
	})

	t.Run("mixed-width text cuts on a rune boundary", func(t *testing.T) {
		s := strings.Repeat("a", model.MaxSummaryLength-4) + "خطرہ"
		got := model.TruncateSummary(s)
		gt.Bool(t, utf8.ValidString(got)).True()
		gt.Bool(t, strings.HasSuffix(got, "...")).True()
	})
}

func TestParseReportTextTruncates(t *testing.T) {
	long := "Risk Level: High\nSummary: " + strings.Repeat("b", model.MaxSummaryLength+100)
	risk, summary := model.ParseReportText(long)
	gt.Value(t, risk).Equal(types.RiskHigh)
	gt.Value(t, len(summary)).Equal(model.MaxSummaryLength)
	gt.Bool(t, strings.HasSuffix(summary, "...")).True()
}
