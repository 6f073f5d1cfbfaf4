package interfaces

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

// NoteRepository defines the interface for clinician note persistence
type NoteRepository interface {
	// Upsert creates or replaces the note for a patient
	Upsert(ctx context.Context, note *model.Note) error

	// Get retrieves the note for a patient.
	// Returns a not-found error when no note exists.
	Get(ctx context.Context, patientID types.PatientID) (*model.Note, error)
}
