package embedding

import (
	"context"
	"errors"
)

// ErrEmptyEmbedding is returned when the upstream model call succeeds but
// yields no vector. Callers treat it like any other embedding failure.
var ErrEmptyEmbedding = errors.New("embedding model returned an empty vector")

// EmbeddingProvider defines the interface for generating text embeddings.
// Generate is deterministic for a fixed model version; no retry is performed
// at this layer.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
