package retrieval

import (
	"context"
	"log"

	"legislation-qa-be/internal/repository/contract"
	"legislation-qa-be/pkg/embedding"
)

// topKResults is fixed for interactive queries.
const topKResults = 10

// Engine turns a raw query into ranked passage text. A degraded answer beats
// no answer: embedding or store failures yield an empty result instead of
// failing the request.
type Engine struct {
	embedder embedding.EmbeddingProvider
	store    contract.PassageRepository
	logger   *log.Logger
}

func NewEngine(embedder embedding.EmbeddingProvider, store contract.PassageRepository, logger *log.Logger) *Engine {
	return &Engine{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Retrieve returns the text of the passages most similar to the query,
// best-first. The result is never nil.
func (e *Engine) Retrieve(ctx context.Context, query string) []string {
	vector, err := e.embedder.Generate(ctx, query)
	if err != nil {
		e.logger.Printf("[RETRIEVAL] Embedding failed, continuing without context: %v", err)
		return []string{}
	}

	scored, err := e.store.TopK(ctx, vector, topKResults)
	if err != nil {
		e.logger.Printf("[RETRIEVAL] Similarity query failed, continuing without context: %v", err)
		return []string{}
	}

	texts := make([]string, len(scored))
	for i, s := range scored {
		texts[i] = s.Text
	}

	e.logger.Printf("[RETRIEVAL] Retrieved %d passages", len(texts))
	return texts
}
