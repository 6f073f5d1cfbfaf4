package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/freundlier/intake/pkg/service/rag"
	"github.com/freundlier/intake/pkg/utils/async"
	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"golang.org/x/sync/errgroup"
)

// ChatResult is the outcome of one patient chat turn
type ChatResult struct {
	Response    string
	IsEmergency bool
}

// HandleChatMessage runs one turn of the intake conversation: turn gate,
// crisis tripwire, knowledge retrieval, and response generation.
//
// The turn-gate check and user-message persistence complete, in order,
// before any model call. Two near-simultaneous messages from the same
// patient can still exceed the cap by one; that bound is accepted.
func (uc *UseCases) HandleChatMessage(ctx context.Context, patientID types.PatientID, message string, sessionStart time.Time) (*ChatResult, error) {
	logger := logging.From(ctx)

	if err := patientID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid patient ID", goerr.V("patientID", patientID))
	}
	if strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "message must not be empty")
	}

	// History read and turn count are both read-only, so they run
	// concurrently.
	var history []*model.Message
	var userTurns int

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		msgs, err := uc.repo.Message().ListSince(egCtx, patientID, sessionStart)
		if err != nil {
			return goerr.Wrap(err, "failed to load session history")
		}
		history = msgs
		return nil
	})
	eg.Go(func() error {
		count, err := uc.repo.Message().CountUserSince(egCtx, patientID, sessionStart)
		if err != nil {
			return goerr.Wrap(err, "failed to count session turns")
		}
		userTurns = count
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if userTurns >= MaxUserTurns {
		return nil, goerr.Wrap(ErrSessionLocked, "turn cap reached",
			goerr.V("patientID", patientID),
			goerr.V("userTurns", userTurns),
		)
	}

	if _, err := uc.repo.Message().Append(ctx, &model.Message{
		PatientID: patientID,
		Role:      types.RoleUser,
		Content:   message,
		CreatedAt: uc.now().UTC(),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to persist patient message")
	}

	if uc.detector != nil && uc.detector.Check(ctx, message) {
		return uc.handleCrisis(ctx, patientID, message)
	}

	ragContext := rag.NoGuidanceFound
	if uc.retriever != nil {
		ragContext = uc.retriever.Retrieve(ctx, message)
	}

	transcript := renderIntakeTranscript(history, message)
	prompt := fmt.Sprintf(intakePromptTemplate, ragContext, transcript)

	session, err := uc.chatLLM.NewSession(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create response session")
	}
	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate intake response")
	}

	reply := ""
	if len(resp.Texts) > 0 {
		reply = strings.TrimSpace(resp.Texts[0])
	}
	if reply == "" {
		logger.Warn("response model returned empty text, using fallback line", "patientID", patientID)
		reply = generationFallback
	}

	if _, err := uc.repo.Message().Append(ctx, &model.Message{
		PatientID: patientID,
		Role:      types.RoleAssistant,
		Content:   reply,
		CreatedAt: uc.now().UTC(),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to persist assistant message")
	}

	return &ChatResult{Response: reply, IsEmergency: false}, nil
}

// handleCrisis is the terminal branch for a confirmed emergency: record
// the alert, persist the canned reply, and notify the on-call team.
func (uc *UseCases) handleCrisis(ctx context.Context, patientID types.PatientID, message string) (*ChatResult, error) {
	logger := logging.From(ctx)
	logger.Warn("confirmed crisis detected", "patientID", patientID)

	alert, err := uc.repo.Alert().Create(ctx, &model.Alert{
		PatientID:      patientID,
		Severity:       types.SeverityHigh,
		TriggerMessage: message,
		CreatedAt:      uc.now().UTC(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record crisis alert")
	}

	if _, err := uc.repo.Message().Append(ctx, &model.Message{
		PatientID: patientID,
		Role:      types.RoleAssistant,
		Content:   crisisResponse,
		CreatedAt: uc.now().UTC(),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to persist crisis response")
	}

	// Notification is best effort and must not delay the reply to the
	// patient.
	notifier := uc.notifier
	async.Dispatch(ctx, func(ctx context.Context) error {
		return notifier.NotifyCrisis(ctx, alert)
	})

	return &ChatResult{Response: crisisResponse, IsEmergency: true}, nil
}

// renderIntakeTranscript renders the session history with the new patient
// message as the final line
func renderIntakeTranscript(history []*model.Message, message string) string {
	var sb strings.Builder
	for _, msg := range history {
		if msg.Role == types.RoleAssistant {
			sb.WriteString("Freundlier (AI): ")
		} else {
			sb.WriteString("Patient: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Patient: ")
	sb.WriteString(message)
	return sb.String()
}
