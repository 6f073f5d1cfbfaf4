package interfaces

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

// ReportRepository defines the interface for triage report persistence
type ReportRepository interface {
	// Replace deletes any existing reports for the patient and inserts the
	// given one, keeping at most one live report per patient
	Replace(ctx context.Context, report *model.Report) (*model.Report, error)

	// GetByPatientID retrieves the current report for a patient.
	// Returns a not-found error when no report exists.
	GetByPatientID(ctx context.Context, patientID types.PatientID) (*model.Report, error)
}
