package memory

import (
	"context"
	"sync"
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[types.PatientID]*model.Report
}

var _ interfaces.ReportRepository = &reportRepository{}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[types.PatientID]*model.Report),
	}
}

func (r *reportRepository) Replace(_ context.Context, report *model.Report) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *report
	if copied.ID == "" {
		copied.ID = model.NewReportID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	// Map assignment is the delete-then-insert
	r.reports[copied.PatientID] = &copied

	result := copied
	return &result, nil
}

func (r *reportRepository) GetByPatientID(_ context.Context, patientID types.PatientID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[patientID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("patientID", patientID))
	}

	copied := *report
	return &copied, nil
}
