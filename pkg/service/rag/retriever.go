package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/m-mizutani/gollem"
)

const (
	// SimilarityThreshold is the minimum cosine similarity for a knowledge
	// record to be considered relevant
	SimilarityThreshold = 0.7

	// MaxMatches caps the number of records rendered into the context block
	MaxMatches = 2

	// NoGuidanceFound is the sentinel context used whenever retrieval
	// cannot produce guidance, for any reason
	NoGuidanceFound = "No specific CBT guidelines found for this statement."
)

// Retriever enriches patient messages with matching CBT guidance from the
// knowledge base. Retrieval is best-effort: every failure mode degrades to
// the sentinel context so response generation is never blocked.
type Retriever struct {
	llm  gollem.LLMClient
	repo interfaces.KnowledgeRepository
}

func NewRetriever(llm gollem.LLMClient, repo interfaces.KnowledgeRepository) *Retriever {
	return &Retriever{
		llm:  llm,
		repo: repo,
	}
}

// Retrieve embeds the message, queries the knowledge base, and renders the
// matches as a bulleted context block. It never returns an error.
func (x *Retriever) Retrieve(ctx context.Context, message string) string {
	logger := logging.From(ctx)

	embeddings, err := x.llm.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{message})
	if err != nil {
		logger.Warn("embedding generation failed, using sentinel context", "error", err)
		return NoGuidanceFound
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		logger.Warn("embedding generation returned empty vector, using sentinel context")
		return NoGuidanceFound
	}

	embedding := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		embedding[i] = float32(v)
	}

	matches, err := x.repo.FindNearest(ctx, embedding, SimilarityThreshold, MaxMatches)
	if err != nil {
		logger.Warn("knowledge base query failed, using sentinel context", "error", err)
		return NoGuidanceFound
	}
	if len(matches) == 0 {
		return NoGuidanceFound
	}

	return Render(matches)
}

// Render formats knowledge matches into the context block consumed by the
// response generation prompt
func Render(matches []*model.KnowledgeMatch) string {
	if len(matches) == 0 {
		return NoGuidanceFound
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf(
			"- Identified Emotion: %s | Symptom: %s | Risk: %s | Recommended CBT Approach: %s",
			m.Record.UnderlyingEmotion,
			m.Record.SymptomCategory,
			m.Record.RiskLevel,
			m.Record.SuggestedApproach,
		))
	}
	return strings.Join(lines, "\n")
}
