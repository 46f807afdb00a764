package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"legislation-qa-be/internal/entity"
	"legislation-qa-be/internal/model"
	"legislation-qa-be/internal/repository/implementation"
	"legislation-qa-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a Postgres with the pgvector extension. Set DB_CONNECTION_STRING
// to run; the test creates and drops its own rows.
func TestPassageSimilaritySearch(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	require.NoError(t, gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error)
	require.NoError(t, gormDB.AutoMigrate(&model.Passage{}))

	repo := implementation.NewPassageRepository(gormDB)
	ctx := context.Background()

	// 12 passages whose first component decreases with the index, so the
	// expected ranking against the query vector is the insertion order.
	dim := 1536
	passages := make([]*entity.Passage, 12)
	for i := range passages {
		vec := make([]float32, dim)
		vec[0] = float32(12 - i)
		vec[1] = 1
		passages[i] = &entity.Passage{
			ExternalId: fmt.Sprintf("it-passage-%02d", i),
			Text:       fmt.Sprintf("Provision %d", i),
			Embedding:  vec,
		}
	}
	require.NoError(t, repo.CreateBulk(ctx, passages))
	t.Cleanup(func() {
		gormDB.Exec("DELETE FROM legislation_passages WHERE external_id LIKE 'it-passage-%'")
	})

	query := make([]float32, dim)
	query[0] = 1

	t.Run("TopK caps at k and ranks descending", func(t *testing.T) {
		results, err := repo.TopK(ctx, query, 10)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), 10)

		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
		}
	})

	t.Run("TopK is deterministic for a fixed store", func(t *testing.T) {
		first, err := repo.TopK(ctx, query, 10)
		require.NoError(t, err)
		second, err := repo.TopK(ctx, query, 10)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Count sees the inserted batch", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(12))
	})
}
