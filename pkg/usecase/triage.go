package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/freundlier/intake/pkg/repository/firestore"
	"github.com/freundlier/intake/pkg/repository/memory"
	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// SynthesizeTriage converts the patient's transcript into a structured
// triage report. Providers are tried strictly in order, one attempt each;
// when all fail, a deterministic fallback report is stored so the patient
// is never left without one.
func (uc *UseCases) SynthesizeTriage(ctx context.Context, patientID types.PatientID) (*model.Report, error) {
	if err := patientID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid patient ID", goerr.V("patientID", patientID))
	}

	messages, err := uc.repo.Message().ListRecent(ctx, patientID, TranscriptWindow)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load transcript", goerr.V("patientID", patientID))
	}
	if len(messages) == 0 {
		return nil, goerr.Wrap(ErrNoTranscript, "triage requires at least one message", goerr.V("patientID", patientID))
	}

	demographics := model.UnknownDemographics
	profile, err := uc.repo.Profile().Get(ctx, patientID)
	if err == nil {
		demographics = profile.DemographicsLine()
	} else if !isNotFound(err) {
		// Demographics are an enrichment, not a precondition.
		logging.From(ctx).Warn("failed to load patient profile, using unknown demographics",
			"patientID", patientID, "error", err)
	}

	prompt := fmt.Sprintf(triagePromptTemplate, demographics, renderTriageTranscript(messages))

	text := uc.generateWithFailover(ctx, prompt)
	riskLevel, summary := model.ParseReportText(text)

	report, err := uc.repo.Report().Replace(ctx, &model.Report{
		PatientID: patientID,
		RiskLevel: riskLevel,
		Summary:   summary,
		CreatedAt: uc.now().UTC(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store triage report", goerr.V("patientID", patientID))
	}

	return report, nil
}

// generateWithFailover walks the provider chain until one attempt yields
// text. All-providers-failed degrades to the static fallback report text.
func (uc *UseCases) generateWithFailover(ctx context.Context, prompt string) string {
	logger := logging.From(ctx)

	for _, provider := range uc.triageProviders {
		text, err := uc.attemptProvider(ctx, provider, prompt)
		if err != nil {
			logger.Warn("triage provider failed, trying next",
				"provider", provider.Name, "error", err)
			continue
		}
		logger.Info("triage synthesis succeeded", "provider", provider.Name)
		return text
	}

	logger.Error("all triage providers failed, using fallback report")
	return fallbackReportText
}

// attemptProvider makes exactly one bounded call to a provider. No retry:
// fail fast to the next provider in the chain.
func (uc *UseCases) attemptProvider(ctx context.Context, provider TriageProvider, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.attemptTimeout)
	defer cancel()

	session, err := provider.Client.NewSession(ctx,
		gollem.WithSessionSystemPrompt(triageSystemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate clinical note")
	}

	var text string
	if len(resp.Texts) > 0 {
		text = strings.TrimSpace(resp.Texts[0])
	}
	if text == "" {
		return "", goerr.New("provider returned empty text")
	}

	return text, nil
}

// renderTriageTranscript renders messages as the plain transcript consumed
// by the triage prompt
func renderTriageTranscript(messages []*model.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		role := "Patient"
		if msg.Role == types.RoleAssistant {
			role = "AI"
		}
		lines = append(lines, role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// isNotFound reports whether err wraps a repository not-found error
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}
