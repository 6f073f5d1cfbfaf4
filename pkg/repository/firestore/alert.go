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

type alertDoc struct {
	ID             model.AlertID   `firestore:"id"`
	PatientID      types.PatientID `firestore:"patient_id"`
	Severity       types.Severity  `firestore:"severity"`
	TriggerMessage string          `firestore:"trigger_message"`
	CreatedAt      time.Time       `firestore:"created_at"`
}

type alertRepository struct {
	client *firestore.Client
}

var _ interfaces.AlertRepository = &alertRepository{}

func newAlertRepository(client *firestore.Client) *alertRepository {
	return &alertRepository{client: client}
}

func (r *alertRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionAlerts)
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	copied := *alert
	if copied.ID == "" {
		copied.ID = model.NewAlertID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(copied.ID))
	doc := &alertDoc{
		ID:             copied.ID,
		PatientID:      copied.PatientID,
		Severity:       copied.Severity,
		TriggerMessage: copied.TriggerMessage,
		CreatedAt:      copied.CreatedAt,
	}
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create alert", goerr.V("patientID", copied.PatientID))
	}

	return &copied, nil
}

func (r *alertRepository) ListByPatientID(ctx context.Context, patientID types.PatientID) ([]*model.Alert, error) {
	iter := r.collection().
		Where("patient_id", "==", string(patientID)).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	alerts := make([]*model.Alert, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate alerts", goerr.V("patientID", patientID))
		}

		var d alertDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal alert")
		}
		alerts = append(alerts, &model.Alert{
			ID:             d.ID,
			PatientID:      d.PatientID,
			Severity:       d.Severity,
			TriggerMessage: d.TriggerMessage,
			CreatedAt:      d.CreatedAt,
		})
	}

	return alerts, nil
}
