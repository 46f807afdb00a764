package contract

import (
	"context"
	"errors"

	"legislation-qa-be/internal/entity"
)

// ErrStoreUnavailable means the similarity store could not be reached or the
// query itself failed. Callers on the interactive path degrade rather than
// abort when they see it.
var ErrStoreUnavailable = errors.New("similarity store unavailable")

// ScoredPassage pairs passage text with its cosine similarity to a query
// vector, in [-1,1].
type ScoredPassage struct {
	Text       string
	Similarity float64
}

// PassageRepository is the persistence contract for legislative passages.
// TopK is the only operation the answering pipeline uses; the write side
// belongs to the ingestion job.
type PassageRepository interface {
	// TopK returns the k passages most similar to the query vector, ranked
	// strictly descending by cosine similarity. Read-only.
	TopK(ctx context.Context, embedding []float32, k int) ([]ScoredPassage, error)

	// CreateBulk inserts a batch of passages inside one transaction.
	CreateBulk(ctx context.Context, passages []*entity.Passage) error

	// Count reports how many passages are stored.
	Count(ctx context.Context) (int64, error)
}
