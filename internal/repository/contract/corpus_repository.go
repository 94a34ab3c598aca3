package contract

import (
	"context"

	"novel-recall-be/internal/entity"
)

// ScoredCorpusEntry pairs a corpus entry with its cosine distance to
// the query vector. Smaller distance means more similar.
type ScoredCorpusEntry struct {
	Entry    *entity.CorpusEntry
	Distance float64
}

// CorpusRepository is the read-only store of novel summaries and their
// precomputed embeddings, plus the nearest-neighbor index over them.
type CorpusRepository interface {
	Count(ctx context.Context) (int64, error)

	// SearchSimilar returns up to limit entries ranked ascending by
	// cosine distance to the given L2-normalized vector. A limit larger
	// than the corpus returns every entry.
	SearchSimilar(ctx context.Context, vector []float32, limit int) ([]*ScoredCorpusEntry, error)
}
