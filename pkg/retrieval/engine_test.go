package retrieval

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"legislation-qa-be/internal/entity"
	"legislation-qa-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeStore struct {
	results []contract.ScoredPassage
	err     error

	calls   int
	lastK   int
	lastVec []float32
}

func (f *fakeStore) TopK(ctx context.Context, embedding []float32, k int) ([]contract.ScoredPassage, error) {
	f.calls++
	f.lastK = k
	f.lastVec = embedding
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeStore) CreateBulk(ctx context.Context, passages []*entity.Passage) error {
	return errors.New("read-only in retrieval tests")
}

func (f *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.results)), nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[TEST] ", log.LstdFlags)
}

func TestRetrievePreservesRankOrder(t *testing.T) {
	store := &fakeStore{
		results: []contract.ScoredPassage{
			{Text: "best match", Similarity: 0.93},
			{Text: "second", Similarity: 0.88},
			{Text: "third", Similarity: 0.71},
		},
	}
	engine := NewEngine(&fakeEmbedder{vector: []float32{0.1, 0.2}}, store, testLogger())

	got := engine.Retrieve(context.Background(), "article 5 exemptions")

	assert.Equal(t, []string{"best match", "second", "third"}, got)
	assert.Equal(t, 10, store.lastK)
	assert.Equal(t, []float32{0.1, 0.2}, store.lastVec)
}

func TestRetrieveDegradesOnEmbeddingFailure(t *testing.T) {
	store := &fakeStore{results: []contract.ScoredPassage{{Text: "unreachable", Similarity: 1}}}
	engine := NewEngine(&fakeEmbedder{err: errors.New("model down")}, store, testLogger())

	got := engine.Retrieve(context.Background(), "anything")

	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, store.calls) // store is never queried without a vector
}

func TestRetrieveDegradesOnStoreFailure(t *testing.T) {
	store := &fakeStore{err: contract.ErrStoreUnavailable}
	engine := NewEngine(&fakeEmbedder{vector: []float32{1}}, store, testLogger())

	got := engine.Retrieve(context.Background(), "anything")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRetrieveIsIdempotentForFixedStore(t *testing.T) {
	store := &fakeStore{
		results: []contract.ScoredPassage{
			{Text: "a", Similarity: 0.9},
			{Text: "b", Similarity: 0.8},
		},
	}
	engine := NewEngine(&fakeEmbedder{vector: []float32{0.5}}, store, testLogger())

	first := engine.Retrieve(context.Background(), "same query")
	second := engine.Retrieve(context.Background(), "same query")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, store.calls)
}
