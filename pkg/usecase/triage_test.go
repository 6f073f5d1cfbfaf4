package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/freundlier/intake/pkg/repository/memory"
	"github.com/freundlier/intake/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

// failingClient returns a client whose sessions always fail generation
func failingClient() *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return nil, goerr.New("provider unavailable")
				},
			}, nil
		},
	}
}

func seedTranscript(t *testing.T, repo *memory.Memory, patientID types.PatientID, contents ...string) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i, content := range contents {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		_, err := repo.Message().Append(ctx, &model.Message{
			PatientID: patientID,
			Role:      role,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		gt.NoError(t, err).Required()
	}
}

func TestSynthesizeTriage(t *testing.T) {
	ctx := context.Background()
	patientID := types.PatientID("patient-1")

	t.Run("first provider output is parsed and stored", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I cannot sleep", "How long has this lasted?")

		note := "Risk Level: High\nSummary: Unknown demographics. Persistent insomnia with functional decline."
		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(
				usecase.TriageProvider{Name: "primary", Client: replyClient(note, nil)},
				usecase.TriageProvider{Name: "secondary", Client: failingClient()},
			),
		)

		report, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.RiskLevel).Equal(types.RiskHigh)
		gt.Value(t, report.Summary).Equal("Unknown demographics. Persistent insomnia with functional decline.")

		stored, err := repo.Report().GetByPatientID(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.RiskLevel).Equal(types.RiskHigh)
	})

	t.Run("failing provider falls over to the next in order", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I feel hopeless lately", "Tell me more")

		note := "Risk Level: Medium\nSummary: Low mood, no acute risk indicators."
		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(
				usecase.TriageProvider{Name: "primary", Client: failingClient()},
				usecase.TriageProvider{Name: "secondary", Client: replyClient(note, nil)},
			),
		)

		report, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.RiskLevel).Equal(types.RiskMedium)
		gt.Value(t, report.Summary).Equal("Low mood, no acute risk indicators.")
	})

	t.Run("empty provider text counts as a failure", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I feel tired", "Since when?")

		note := "Risk Level: Low\nSummary: Fatigue, likely situational."
		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(
				usecase.TriageProvider{Name: "primary", Client: replyClient("", nil)},
				usecase.TriageProvider{Name: "secondary", Client: replyClient(note, nil)},
			),
		)

		report, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.RiskLevel).Equal(types.RiskLow)
	})

	t.Run("all providers failing stores the fallback report", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I feel anxious", "When did it start?")

		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(
				usecase.TriageProvider{Name: "primary", Client: failingClient()},
				usecase.TriageProvider{Name: "secondary", Client: failingClient()},
			),
		)

		report, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.RiskLevel).Equal(types.RiskMedium)
		gt.Bool(t, strings.Contains(report.Summary, "review chat transcript manually")).True()
	})

	t.Run("no provider chain stores the fallback report", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "hello", "hi")

		uc := usecase.New(repo, replyClient("unused", nil))

		report, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.RiskLevel).Equal(types.RiskMedium)
	})

	t.Run("re-running triage replaces the previous report", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I cannot focus at work", "Since when?")

		first := "Risk Level: Low\nSummary: First pass."
		second := "Risk Level: High\nSummary: Second pass."

		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(usecase.TriageProvider{Name: "primary", Client: replyClient(first, nil)}),
		)
		_, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()

		uc = usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(usecase.TriageProvider{Name: "primary", Client: replyClient(second, nil)}),
		)
		_, err = uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()

		stored, err := repo.Report().GetByPatientID(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.RiskLevel).Equal(types.RiskHigh)
		gt.Value(t, stored.Summary).Equal("Second pass.")
	})

	t.Run("clock override stamps the stored report", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I feel anxious", "When did it start?")
		fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(usecase.TriageProvider{
				Name:   "primary",
				Client: replyClient("Risk Level: Low\nSummary: ok", nil),
			}),
			usecase.WithClock(func() time.Time { return fixed }),
		)

		report, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.CreatedAt).Equal(fixed)
	})

	t.Run("prompt includes demographics and the trailing window", func(t *testing.T) {
		repo := memory.New()

		gt.NoError(t, repo.Profile().Put(ctx, &model.Profile{
			PatientID: patientID,
			Name:      "Sana",
			Age:       29,
			Gender:    "Female",
		})).Required()

		// 14 messages; only the trailing 12 should reach the prompt
		contents := make([]string, 14)
		for i := range contents {
			contents[i] = "line " + string(rune('A'+i))
		}
		seedTranscript(t, repo, patientID, contents...)

		var prompt string
		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(usecase.TriageProvider{
				Name:   "primary",
				Client: replyClient("Risk Level: Low\nSummary: ok", &prompt),
			}),
		)

		_, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()

		profile, err := repo.Profile().Get(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(prompt, profile.DemographicsLine())).True()
		gt.Bool(t, strings.Contains(prompt, "line C")).True()
		gt.Bool(t, strings.Contains(prompt, "line A")).False()
		gt.Bool(t, strings.Contains(prompt, "line B")).False()
	})

	t.Run("missing profile degrades to unknown demographics", func(t *testing.T) {
		repo := memory.New()
		seedTranscript(t, repo, patientID, "I feel sad", "Tell me more")

		var prompt string
		uc := usecase.New(repo, replyClient("unused", nil),
			usecase.WithTriageProviders(usecase.TriageProvider{
				Name:   "primary",
				Client: replyClient("Risk Level: Low\nSummary: ok", &prompt),
			}),
		)

		_, err := uc.SynthesizeTriage(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(prompt, model.UnknownDemographics)).True()
	})

	t.Run("empty transcript is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New(), replyClient("unused", nil))

		_, err := uc.SynthesizeTriage(ctx, patientID)
		gt.Bool(t, errors.Is(err, usecase.ErrNoTranscript)).True()
	})

	t.Run("empty patient ID is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New(), replyClient("unused", nil))

		_, err := uc.SynthesizeTriage(ctx, "")
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})
}

func TestNoteOperations(t *testing.T) {
	ctx := context.Background()
	patientID := types.PatientID("patient-1")

	t.Run("upsert then get", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, replyClient("unused", nil))

		gt.NoError(t, uc.UpsertNote(ctx, patientID, "Follow up in two weeks")).Required()

		note, err := uc.GetNote(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, note.Note).Equal("Follow up in two weeks")
	})

	t.Run("upsert replaces the existing note", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, replyClient("unused", nil))

		gt.NoError(t, uc.UpsertNote(ctx, patientID, "first")).Required()
		gt.NoError(t, uc.UpsertNote(ctx, patientID, "second")).Required()

		note, err := uc.GetNote(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Value(t, note.Note).Equal("second")
	})

	t.Run("oversized note is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New(), replyClient("unused", nil))

		err := uc.UpsertNote(ctx, patientID, strings.Repeat("x", model.MaxNoteLength+1))
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})

	t.Run("missing note maps to not found", func(t *testing.T) {
		uc := usecase.New(memory.New(), replyClient("unused", nil))

		_, err := uc.GetNote(ctx, patientID)
		gt.Bool(t, errors.Is(err, usecase.ErrNoteNotFound)).True()
	})

	t.Run("missing report maps to not found", func(t *testing.T) {
		uc := usecase.New(memory.New(), replyClient("unused", nil))

		_, err := uc.GetReport(ctx, patientID)
		gt.Bool(t, errors.Is(err, usecase.ErrReportNotFound)).True()
	})
}
