package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"legislation-qa-be/internal/entity"
	"legislation-qa-be/internal/repository/contract"
)

// ErrIngestionWrite means a batch could not be written after all retry
// attempts; the batch is abandoned without partial-row recovery.
var ErrIngestionWrite = errors.New("passage batch insert failed")

const ingestionRetries = 5

// IIngestionService writes harvested passage batches into the similarity store.
type IIngestionService interface {
	IngestBatch(ctx context.Context, passages []*entity.Passage) error
}

type ingestionService struct {
	passageRepo contract.PassageRepository
	logger      *log.Logger
	sleep       func(time.Duration) // overridable in tests
}

func NewIngestionService(passageRepo contract.PassageRepository, logger *log.Logger) IIngestionService {
	return &ingestionService{
		passageRepo: passageRepo,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// IngestBatch inserts the batch transactionally, retrying with exponential
// backoff (wait = 2^attempt seconds) before giving up.
func (s *ingestionService) IngestBatch(ctx context.Context, passages []*entity.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	var lastErr error
	for attempt := 0; attempt < ingestionRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.passageRepo.CreateBulk(ctx, passages)
		if err == nil {
			s.logger.Printf("[INGEST] Inserted %d passages", len(passages))
			return nil
		}

		lastErr = err
		wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		s.logger.Printf("[INGEST] Batch insert failed (attempt %d/%d), retrying in %s: %v",
			attempt+1, ingestionRetries, wait, err)
		s.sleep(wait)
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrIngestionWrite, ingestionRetries, lastErr)
}
