package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"novel-recall-be/internal/config"
	"novel-recall-be/internal/model"
	"novel-recall-be/pkg/database"
	"novel-recall-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Seeds the book_embeddings table from the static dataset. Idempotent:
// an already-populated table is left alone.
func main() {
	cfg := config.Load()

	if cfg.Corpus.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Corpus.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding novel corpus into Postgres\n")

	color.Yellow("Step 1: Ensuring vector extension and schema")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Printf("Warn: Failed to create vector extension: %v. Continuing...", err)
	}
	if err := db.AutoMigrate(&model.BookEmbedding{}); err != nil {
		color.Red("Failed to migrate book_embeddings: %v", err)
		os.Exit(1)
	}

	var existing int64
	db.Model(&model.BookEmbedding{}).Count(&existing)
	if existing > 0 {
		color.Green("Corpus already seeded (%d books), nothing to do", existing)
		return
	}

	color.Yellow("Step 2: Reading dataset %s", cfg.Corpus.DatasetPath)
	raw, err := os.ReadFile(cfg.Corpus.DatasetPath)
	if err != nil {
		color.Red("Failed to read dataset: %v", err)
		os.Exit(1)
	}

	type record struct {
		Id      int       `json:"id"`
		Title   string    `json:"title"`
		Summary string    `json:"summary"`
		Vector  []float32 `json:"vector"`
	}
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		color.Red("Failed to parse dataset: %v", err)
		os.Exit(1)
	}

	color.Yellow("Step 3: Inserting %d books", len(records))
	books := make([]*model.BookEmbedding, len(records))
	for i, rec := range records {
		source, _ := json.Marshal(rec)
		books[i] = &model.BookEmbedding{
			Id:      rec.Id,
			Title:   rec.Title,
			Summary: rec.Summary,
			// Stored normalized so <=> returns true cosine distance
			EmbeddingValue: pgvector.NewVector(embedding.NormalizeVector(rec.Vector)),
			Source:         datatypes.JSON(source),
		}
	}

	if err := db.WithContext(context.Background()).CreateInBatches(books, 200).Error; err != nil {
		color.Red("Failed to insert corpus: %v", err)
		os.Exit(1)
	}

	color.Green("Done: %d books seeded", len(books))
}
