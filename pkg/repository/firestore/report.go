package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type reportDoc struct {
	ID        model.ReportID  `firestore:"id"`
	PatientID types.PatientID `firestore:"patient_id"`
	RiskLevel types.RiskLevel `firestore:"risk_level"`
	Summary   string          `firestore:"summary"`
	CreatedAt time.Time       `firestore:"created_at"`
}

type reportRepository struct {
	client *firestore.Client
}

var _ interfaces.ReportRepository = &reportRepository{}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionReports)
}

// Replace runs the delete-then-insert inside a single transaction so readers
// never observe a stale and a fresh report side by side.
func (r *reportRepository) Replace(ctx context.Context, report *model.Report) (*model.Report, error) {
	copied := *report
	if copied.ID == "" {
		copied.ID = model.NewReportID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(
			r.collection().Where("patient_id", "==", string(copied.PatientID)),
		).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query existing reports")
		}
		for _, doc := range existing {
			if err := tx.Delete(doc.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete stale report")
			}
		}

		doc := &reportDoc{
			ID:        copied.ID,
			PatientID: copied.PatientID,
			RiskLevel: copied.RiskLevel,
			Summary:   copied.Summary,
			CreatedAt: copied.CreatedAt,
		}
		return tx.Create(r.collection().Doc(string(copied.ID)), doc)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to replace report", goerr.V("patientID", copied.PatientID))
	}

	return &copied, nil
}

func (r *reportRepository) GetByPatientID(ctx context.Context, patientID types.PatientID) (*model.Report, error) {
	iter := r.collection().
		Where("patient_id", "==", string(patientID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("patientID", patientID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("patientID", patientID))
	}

	var d reportDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report")
	}

	return &model.Report{
		ID:        d.ID,
		PatientID: d.PatientID,
		RiskLevel: d.RiskLevel,
		Summary:   d.Summary,
		CreatedAt: d.CreatedAt,
	}, nil
}
