package interfaces

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

// ProfileRepository defines the interface for patient profile lookups.
// Profiles are owned by the authentication collaborator; Put exists for
// provisioning and tests.
type ProfileRepository interface {
	// Get retrieves the profile for a patient.
	// Returns a not-found error when no profile exists.
	Get(ctx context.Context, patientID types.PatientID) (*model.Profile, error)

	// Put creates or replaces a profile
	Put(ctx context.Context, profile *model.Profile) error
}
