package memory

import (
	"context"
	"testing"

	"novel-recall-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []*entity.CorpusEntry {
	// Unit vectors in a 3-dim space; distances to the x axis are
	// trivially ordered.
	return []*entity.CorpusEntry{
		{Id: 1, Title: "exact match", Summary: "a", Vector: []float32{1, 0, 0}},
		{Id: 2, Title: "orthogonal", Summary: "b", Vector: []float32{0, 1, 0}},
		{Id: 3, Title: "close", Summary: "c", Vector: normalize([]float32{1, 1, 0})},
	}
}

func TestCorpusIndexSearchSimilarRanksByDistance(t *testing.T) {
	idx := NewCorpusIndex(testEntries())

	results, err := idx.SearchSimilar(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Entry.Id)
	assert.Equal(t, 3, results[1].Entry.Id)
	assert.Equal(t, 2, results[2].Entry.Id)

	// Ascending cosine distance
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
	assert.LessOrEqual(t, results[1].Distance, results[2].Distance)
}

func TestCorpusIndexSearchSimilarIsDeterministic(t *testing.T) {
	// Two entries at identical distance must come back in a stable
	// order (by corpus id) on every call.
	entries := []*entity.CorpusEntry{
		{Id: 7, Title: "tie b", Vector: []float32{0, 1, 0}},
		{Id: 2, Title: "tie a", Vector: []float32{0, 0, 1}},
	}
	idx := NewCorpusIndex(entries)

	for i := 0; i < 5; i++ {
		results, err := idx.SearchSimilar(context.Background(), []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 2, results[0].Entry.Id)
		assert.Equal(t, 7, results[1].Entry.Id)
	}
}

func TestCorpusIndexSearchSimilarClampsLimit(t *testing.T) {
	idx := NewCorpusIndex(testEntries())

	results, err := idx.SearchSimilar(context.Background(), []float32{1, 0, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = idx.SearchSimilar(context.Background(), []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3, "non-positive limit falls back to default top-k")
}

func TestCorpusIndexCount(t *testing.T) {
	idx := NewCorpusIndex(testEntries())
	count, err := idx.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestNormalize(t *testing.T) {
	v := normalize([]float32{3, 4, 0})
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)

	zero := normalize([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}
