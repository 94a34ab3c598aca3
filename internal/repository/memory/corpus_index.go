package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"novel-recall-be/internal/entity"
	"novel-recall-be/internal/repository/contract"
)

// CorpusIndex is a brute-force cosine index over the static corpus,
// held fully in memory. It backs deployments without Postgres and the
// unit tests. The corpus is loaded once and never mutated, so reads
// need no locking.
type CorpusIndex struct {
	entries []*entity.CorpusEntry
}

func NewCorpusIndex(entries []*entity.CorpusEntry) *CorpusIndex {
	return &CorpusIndex{entries: entries}
}

// corpusRecord mirrors one element of the static dataset file.
type corpusRecord struct {
	Id      int       `json:"id"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Vector  []float32 `json:"vector"`
}

// LoadCorpusIndex reads the dataset JSON (title, summary, precomputed
// 768-dim vector per book) and builds the in-memory index. Vectors are
// re-normalized defensively so dot product equals cosine similarity.
func LoadCorpusIndex(path string) (*CorpusIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus dataset: %w", err)
	}

	var records []corpusRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse corpus dataset: %w", err)
	}

	entries := make([]*entity.CorpusEntry, len(records))
	for i, rec := range records {
		entries[i] = &entity.CorpusEntry{
			Id:      rec.Id,
			Title:   rec.Title,
			Summary: rec.Summary,
			Vector:  normalize(rec.Vector),
		}
	}
	return NewCorpusIndex(entries), nil
}

func (idx *CorpusIndex) Count(ctx context.Context) (int64, error) {
	return int64(len(idx.entries)), nil
}

// SearchSimilar scores every entry against the query vector and
// returns the limit nearest, ascending by cosine distance. Ties break
// on corpus id so identical inputs always produce identical output.
func (idx *CorpusIndex) SearchSimilar(ctx context.Context, vector []float32, limit int) ([]*contract.ScoredCorpusEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	scored := make([]*contract.ScoredCorpusEntry, len(idx.entries))
	for i, e := range idx.entries {
		scored[i] = &contract.ScoredCorpusEntry{
			Entry:    e,
			Distance: 1 - dot(e.Vector, vector),
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Distance != scored[j].Distance {
			return scored[i].Distance < scored[j].Distance
		}
		return scored[i].Entry.Id < scored[j].Entry.Id
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	return scored[:limit], nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
