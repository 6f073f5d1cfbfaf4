package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type noteDoc struct {
	PatientID types.PatientID `firestore:"patient_id"`
	Note      string          `firestore:"note"`
	UpdatedAt time.Time       `firestore:"updated_at"`
}

type noteRepository struct {
	client *firestore.Client
}

var _ interfaces.NoteRepository = &noteRepository{}

func newNoteRepository(client *firestore.Client) *noteRepository {
	return &noteRepository{client: client}
}

func (r *noteRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionNotes)
}

// Upsert keys the document by patient ID, which makes Set the atomic upsert.
func (r *noteRepository) Upsert(ctx context.Context, note *model.Note) error {
	copied := *note
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = time.Now().UTC()
	}

	doc := &noteDoc{
		PatientID: copied.PatientID,
		Note:      copied.Note,
		UpdatedAt: copied.UpdatedAt,
	}
	if _, err := r.collection().Doc(string(copied.PatientID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to upsert note", goerr.V("patientID", copied.PatientID))
	}
	return nil
}

func (r *noteRepository) Get(ctx context.Context, patientID types.PatientID) (*model.Note, error) {
	doc, err := r.collection().Doc(string(patientID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "note not found", goerr.V("patientID", patientID))
		}
		return nil, goerr.Wrap(err, "failed to get note", goerr.V("patientID", patientID))
	}

	var d noteDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal note")
	}

	return &model.Note{
		PatientID: d.PatientID,
		Note:      d.Note,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
