package usecase

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// UpsertNote creates or replaces the clinician note for a patient
func (uc *UseCases) UpsertNote(ctx context.Context, patientID types.PatientID, note string) error {
	n := &model.Note{
		PatientID: patientID,
		Note:      note,
		UpdatedAt: uc.now().UTC(),
	}
	if err := n.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, "invalid note", goerr.V("cause", err.Error()))
	}

	if err := uc.repo.Note().Upsert(ctx, n); err != nil {
		return goerr.Wrap(err, "failed to upsert note", goerr.V("patientID", patientID))
	}
	return nil
}

// GetNote retrieves the clinician note for a patient
func (uc *UseCases) GetNote(ctx context.Context, patientID types.PatientID) (*model.Note, error) {
	if err := patientID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid patient ID", goerr.V("patientID", patientID))
	}

	note, err := uc.repo.Note().Get(ctx, patientID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrNoteNotFound, "no note for patient", goerr.V("patientID", patientID))
		}
		return nil, goerr.Wrap(err, "failed to get note", goerr.V("patientID", patientID))
	}
	return note, nil
}

// ListAlerts retrieves the alert feed for a patient, newest first
func (uc *UseCases) ListAlerts(ctx context.Context, patientID types.PatientID) ([]*model.Alert, error) {
	if err := patientID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid patient ID", goerr.V("patientID", patientID))
	}

	alerts, err := uc.repo.Alert().ListByPatientID(ctx, patientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list alerts", goerr.V("patientID", patientID))
	}
	return alerts, nil
}

// GetReport retrieves the current triage report for a patient
func (uc *UseCases) GetReport(ctx context.Context, patientID types.PatientID) (*model.Report, error) {
	if err := patientID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid patient ID", goerr.V("patientID", patientID))
	}

	report, err := uc.repo.Report().GetByPatientID(ctx, patientID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrReportNotFound, "no report for patient", goerr.V("patientID", patientID))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("patientID", patientID))
	}
	return report, nil
}
