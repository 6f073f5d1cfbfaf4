package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type messageDoc struct {
	ID        model.MessageID `firestore:"id"`
	PatientID types.PatientID `firestore:"patient_id"`
	Role      types.Role      `firestore:"role"`
	Content   string          `firestore:"content"`
	CreatedAt time.Time       `firestore:"created_at"`
}

func toMessageDoc(m *model.Message) *messageDoc {
	return &messageDoc{
		ID:        m.ID,
		PatientID: m.PatientID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func fromMessageDoc(d *messageDoc) *model.Message {
	return &model.Message{
		ID:        d.ID,
		PatientID: d.PatientID,
		Role:      d.Role,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

func docToMessage(doc *firestore.DocumentSnapshot) (*model.Message, error) {
	var d messageDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromMessageDoc(&d), nil
}

type messageRepository struct {
	client *firestore.Client
}

var _ interfaces.MessageRepository = &messageRepository{}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionMessages)
}

func (r *messageRepository) Append(ctx context.Context, msg *model.Message) (*model.Message, error) {
	copied := *msg
	if copied.ID == "" {
		copied.ID = model.NewMessageID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(copied.ID))
	if _, err := docRef.Create(ctx, toMessageDoc(&copied)); err != nil {
		return nil, goerr.Wrap(err, "failed to append message", goerr.V("patientID", copied.PatientID))
	}

	return &copied, nil
}

func (r *messageRepository) CountUserSince(ctx context.Context, patientID types.PatientID, since time.Time) (int, error) {
	query := r.collection().
		Where("patient_id", "==", string(patientID)).
		Where("role", "==", string(types.RoleUser)).
		Where("created_at", ">=", since)

	result, err := query.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count user messages", goerr.V("patientID", patientID))
	}

	countValue, ok := result["count"]
	if !ok {
		return 0, goerr.New("count aggregation missing from result")
	}
	count, ok := countValue.(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count aggregation type")
	}
	return int(count.GetIntegerValue()), nil
}

func (r *messageRepository) ListSince(ctx context.Context, patientID types.PatientID, since time.Time) ([]*model.Message, error) {
	iter := r.collection().
		Where("patient_id", "==", string(patientID)).
		Where("created_at", ">=", since).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	messages := make([]*model.Message, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages", goerr.V("patientID", patientID))
		}

		m, err := docToMessage(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message")
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (r *messageRepository) ListRecent(ctx context.Context, patientID types.PatientID, limit int) ([]*model.Message, error) {
	iter := r.collection().
		Where("patient_id", "==", string(patientID)).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	messages := make([]*model.Message, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages", goerr.V("patientID", patientID))
		}

		m, err := docToMessage(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message")
		}
		messages = append(messages, m)
	}

	// Query is newest-first for the limit; callers expect ascending order
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}
