package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type knowledgeRepository struct {
	mu      sync.RWMutex
	records map[model.KnowledgeID]*model.KnowledgeRecord
}

var _ interfaces.KnowledgeRepository = &knowledgeRepository{}

func newKnowledgeRepository() *knowledgeRepository {
	return &knowledgeRepository{
		records: make(map[model.KnowledgeID]*model.KnowledgeRecord),
	}
}

func (r *knowledgeRepository) Create(_ context.Context, record *model.KnowledgeRecord) (*model.KnowledgeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	if copied.ID == "" {
		copied.ID = model.NewKnowledgeID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	r.records[copied.ID] = &copied

	result := copied
	return &result, nil
}

func (r *knowledgeRepository) Get(_ context.Context, id model.KnowledgeID) (*model.KnowledgeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "knowledge record not found", goerr.V("id", id))
	}

	copied := *record
	return &copied, nil
}

func (r *knowledgeRepository) FindNearest(_ context.Context, embedding []float32, threshold float64, limit int) ([]*model.KnowledgeMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*model.KnowledgeMatch, 0)
	for _, record := range r.records {
		sim, err := cosineSimilarity(embedding, record.Embedding)
		if err != nil {
			return nil, err
		}
		if sim >= threshold {
			copied := *record
			matches = append(matches, &model.KnowledgeMatch{
				Record:     &copied,
				Similarity: sim,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, goerr.New("embedding dimension mismatch",
			goerr.V("query", len(a)),
			goerr.V("record", len(b)),
		)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
