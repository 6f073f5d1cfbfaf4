package interfaces

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

// AlertRepository defines the interface for safety alert persistence.
// Alerts are write-once: no update or delete operations exist.
type AlertRepository interface {
	// Create stores a new alert and returns it with ID and CreatedAt set
	Create(ctx context.Context, alert *model.Alert) (*model.Alert, error)

	// ListByPatientID retrieves alerts for a patient, newest first
	ListByPatientID(ctx context.Context, patientID types.PatientID) ([]*model.Alert, error)
}
