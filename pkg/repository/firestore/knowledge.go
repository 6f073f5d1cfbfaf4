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
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// knowledgeDoc is the Firestore document representation of
// model.KnowledgeRecord. Embedding is stored as firestore.Vector32 so that
// FindNearest vector search works.
type knowledgeDoc struct {
	ID                model.KnowledgeID  `firestore:"id"`
	PatientStatement  string             `firestore:"patient_statement"`
	UnderlyingEmotion string             `firestore:"underlying_emotion"`
	SymptomCategory   string             `firestore:"symptom_category"`
	RiskLevel         types.RiskLevel    `firestore:"risk_level"`
	SuggestedApproach string             `firestore:"suggested_approach"`
	Embedding         firestore.Vector32 `firestore:"embedding,omitempty"`
	CreatedAt         time.Time          `firestore:"created_at"`

	// Populated by FindNearest via DistanceResultField; never written.
	VectorDistance float64 `firestore:"vector_distance,omitempty"`
}

func toKnowledgeDoc(k *model.KnowledgeRecord) *knowledgeDoc {
	doc := &knowledgeDoc{
		ID:                k.ID,
		PatientStatement:  k.PatientStatement,
		UnderlyingEmotion: k.UnderlyingEmotion,
		SymptomCategory:   k.SymptomCategory,
		RiskLevel:         k.RiskLevel,
		SuggestedApproach: k.SuggestedApproach,
		CreatedAt:         k.CreatedAt,
	}
	if len(k.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(k.Embedding)
	}
	return doc
}

func fromKnowledgeDoc(d *knowledgeDoc) *model.KnowledgeRecord {
	k := &model.KnowledgeRecord{
		ID:                d.ID,
		PatientStatement:  d.PatientStatement,
		UnderlyingEmotion: d.UnderlyingEmotion,
		SymptomCategory:   d.SymptomCategory,
		RiskLevel:         d.RiskLevel,
		SuggestedApproach: d.SuggestedApproach,
		CreatedAt:         d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		k.Embedding = []float32(d.Embedding)
	}
	return k
}

type knowledgeRepository struct {
	client *firestore.Client
}

var _ interfaces.KnowledgeRepository = &knowledgeRepository{}

func newKnowledgeRepository(client *firestore.Client) *knowledgeRepository {
	return &knowledgeRepository{client: client}
}

func (r *knowledgeRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionKnowledge)
}

func (r *knowledgeRepository) Create(ctx context.Context, record *model.KnowledgeRecord) (*model.KnowledgeRecord, error) {
	copied := *record
	if copied.ID == "" {
		copied.ID = model.NewKnowledgeID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(copied.ID))
	if _, err := docRef.Set(ctx, toKnowledgeDoc(&copied)); err != nil {
		return nil, goerr.Wrap(err, "failed to create knowledge record")
	}

	return &copied, nil
}

func (r *knowledgeRepository) Get(ctx context.Context, id model.KnowledgeID) (*model.KnowledgeRecord, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "knowledge record not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get knowledge record", goerr.V("id", id))
	}

	var d knowledgeDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal knowledge record", goerr.V("id", id))
	}
	return fromKnowledgeDoc(&d), nil
}

// FindNearest runs a cosine vector search. Firestore returns cosine
// distance; similarity = 1 - distance, and results below the similarity
// threshold are filtered out here because FindNearest has no server-side
// threshold parameter.
func (r *knowledgeRepository) FindNearest(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*model.KnowledgeMatch, error) {
	vq := r.collection().FindNearest(
		"embedding",
		firestore.Vector32(embedding),
		limit,
		firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{
			DistanceResultField: "vector_distance",
		},
	)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	matches := make([]*model.KnowledgeMatch, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		var d knowledgeDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal knowledge record from vector search")
		}

		similarity := 1 - d.VectorDistance
		if similarity < threshold {
			continue
		}
		matches = append(matches, &model.KnowledgeMatch{
			Record:     fromKnowledgeDoc(&d),
			Similarity: similarity,
		})
	}

	return matches, nil
}
