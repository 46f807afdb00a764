package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/fatih/color"

	"legislation-qa-be/internal/config"
	"legislation-qa-be/internal/entity"
	"legislation-qa-be/internal/model"
	"legislation-qa-be/internal/repository/implementation"
	"legislation-qa-be/internal/service"
	"legislation-qa-be/pkg/database"
)

// passageRecord mirrors one line of the harvested export produced by the
// external vector-index dump.
type passageRecord struct {
	ExternalId string    `json:"external_id"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding"`
	Chapter    string    `json:"chapter,omitempty"`
	Article    string    `json:"article,omitempty"`
	Section    string    `json:"section,omitempty"`
	Subsection string    `json:"subsection,omitempty"`
	Paragraph  string    `json:"paragraph,omitempty"`
	Item       string    `json:"item,omitempty"`
	Position   string    `json:"position,omitempty"`
	Title      string    `json:"title,omitempty"`
}

func main() {
	inputPath := flag.String("input", "passages.jsonl", "path to the harvested passage export (JSONL)")
	batchSize := flag.Int("batch", 100, "passages per insert batch")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatalf("Unable to ensure pgvector extension: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.Passage{}); err != nil {
		log.Fatalf("Unable to migrate passage schema: %v", err)
	}

	ingestLogger := log.New(os.Stdout, "[INGEST] ", log.LstdFlags)
	ingestionService := service.NewIngestionService(implementation.NewPassageRepository(gormDB), ingestLogger)

	file, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Unable to open export file: %v", err)
	}
	defer file.Close()

	ctx := context.Background()
	var (
		batch    []*entity.Passage
		inserted int
		skipped  int
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // embeddings make for long lines

	for scanner.Scan() {
		var record passageRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			color.Yellow("Skipping malformed line: %v", err)
			skipped++
			continue
		}
		if record.ExternalId == "" || record.Text == "" || len(record.Embedding) == 0 {
			color.Yellow("Skipping incomplete record %q", record.ExternalId)
			skipped++
			continue
		}

		batch = append(batch, toEntity(&record))
		if len(batch) >= *batchSize {
			inserted += flush(ctx, ingestionService, batch)
			batch = nil
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed reading export file: %v", err)
	}
	if len(batch) > 0 {
		inserted += flush(ctx, ingestionService, batch)
	}

	color.Green("Done: %d passages inserted, %d skipped", inserted, skipped)
}

func flush(ctx context.Context, svc service.IIngestionService, batch []*entity.Passage) int {
	if err := svc.IngestBatch(ctx, batch); err != nil {
		color.Red("Batch of %d abandoned: %v", len(batch), err)
		return 0
	}
	color.Cyan("Inserted batch of %d passages", len(batch))
	return len(batch)
}

func toEntity(r *passageRecord) *entity.Passage {
	return &entity.Passage{
		ExternalId: r.ExternalId,
		Text:       r.Text,
		Embedding:  r.Embedding,
		Chapter:    r.Chapter,
		Article:    r.Article,
		Section:    r.Section,
		Subsection: r.Subsection,
		Paragraph:  r.Paragraph,
		Item:       r.Item,
		Position:   r.Position,
		Title:      r.Title,
	}
}
