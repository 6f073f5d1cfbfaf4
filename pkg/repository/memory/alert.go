package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

type alertRepository struct {
	mu     sync.RWMutex
	alerts map[types.PatientID][]*model.Alert
}

var _ interfaces.AlertRepository = &alertRepository{}

func newAlertRepository() *alertRepository {
	return &alertRepository{
		alerts: make(map[types.PatientID][]*model.Alert),
	}
}

func (r *alertRepository) Create(_ context.Context, alert *model.Alert) (*model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *alert
	if copied.ID == "" {
		copied.ID = model.NewAlertID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	r.alerts[copied.PatientID] = append(r.alerts[copied.PatientID], &copied)

	result := copied
	return &result, nil
}

func (r *alertRepository) ListByPatientID(_ context.Context, patientID types.PatientID) ([]*model.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Alert, 0, len(r.alerts[patientID]))
	for _, a := range r.alerts[patientID] {
		copied := *a
		result = append(result, &copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
