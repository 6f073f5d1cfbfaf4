package interfaces

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
)

// KnowledgeRepository defines the interface for the CBT guidance knowledge
// base. The intake pipeline only queries it; Create exists for the offline
// ingestion job and tests.
type KnowledgeRepository interface {
	// Create stores a new knowledge record
	Create(ctx context.Context, record *model.KnowledgeRecord) (*model.KnowledgeRecord, error)

	// Get retrieves a knowledge record by ID
	Get(ctx context.Context, id model.KnowledgeID) (*model.KnowledgeRecord, error)

	// FindNearest retrieves up to limit records whose cosine similarity to
	// the query embedding is >= threshold, best match first
	FindNearest(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*model.KnowledgeMatch, error)
}
