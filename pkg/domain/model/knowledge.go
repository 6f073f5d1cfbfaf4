package model

import (
	"time"

	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/google/uuid"
)

// EmbeddingDimension is the dimension of the embedding vector.
// The knowledge base is embedded with gemini-embedding-001 at 768 dimensions.
const EmbeddingDimension = 768

// KnowledgeID is a UUID-based identifier for KnowledgeRecord
type KnowledgeID string

// NewKnowledgeID generates a new UUID v4 KnowledgeID
func NewKnowledgeID() KnowledgeID {
	return KnowledgeID(uuid.New().String())
}

// KnowledgeRecord is one entry of the CBT guidance knowledge base. Records
// are written by the offline ingestion job and read-only for the intake
// pipeline.
type KnowledgeRecord struct {
	ID                KnowledgeID
	PatientStatement  string // Exemplar patient statement the embedding was built from
	UnderlyingEmotion string
	SymptomCategory   string
	RiskLevel         types.RiskLevel
	SuggestedApproach string // Recommended CBT approach for this presentation
	Embedding         []float32
	CreatedAt         time.Time
}

// KnowledgeMatch is a KnowledgeRecord together with its similarity score
// against a query embedding, best match first in result sets.
type KnowledgeMatch struct {
	Record     *KnowledgeRecord
	Similarity float64
}
