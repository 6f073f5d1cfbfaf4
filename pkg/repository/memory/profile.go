package memory

import (
	"context"
	"sync"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[types.PatientID]*model.Profile
}

var _ interfaces.ProfileRepository = &profileRepository{}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[types.PatientID]*model.Profile),
	}
}

func (r *profileRepository) Get(_ context.Context, patientID types.PatientID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[patientID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("patientID", patientID))
	}

	copied := *profile
	return &copied, nil
}

func (r *profileRepository) Put(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *profile
	r.profiles[copied.PatientID] = &copied
	return nil
}
