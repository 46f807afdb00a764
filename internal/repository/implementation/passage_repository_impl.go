package implementation

import (
	"context"
	"fmt"

	"legislation-qa-be/internal/entity"
	"legislation-qa-be/internal/mapper"
	"legislation-qa-be/internal/model"
	"legislation-qa-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PassageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PassageMapper
}

func NewPassageRepository(db *gorm.DB) contract.PassageRepository {
	return &PassageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPassageMapper(),
	}
}

func (r *PassageRepositoryImpl) TopK(ctx context.Context, embedding []float32, k int) ([]contract.ScoredPassage, error) {
	if k <= 0 {
		k = 10
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding <=> query_vector) = cosine_similarity
	type result struct {
		Text       string
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("legislation_passages").
		Select("text, 1 - (embedding <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Order("external_id ASC"). // deterministic tie-break for a fixed store state
		Limit(k).
		Scan(&results).Error

	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}

	scored := make([]contract.ScoredPassage, len(results))
	for i, res := range results {
		scored[i] = contract.ScoredPassage{
			Text:       res.Text,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *PassageRepositoryImpl) CreateBulk(ctx context.Context, passages []*entity.Passage) error {
	models := make([]*model.Passage, len(passages))
	for i, p := range passages {
		models[i] = r.mapper.ToModel(p)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models).Error
	})
	if err != nil {
		return err
	}

	// Update generated IDs back to entities
	for i, m := range models {
		*passages[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PassageRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Passage{}).Count(&count).Error
	return count, err
}
