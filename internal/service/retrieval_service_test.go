package service

import (
	"context"
	"errors"
	"testing"

	"novel-recall-be/internal/entity"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/internal/repository/memory"
	"novel-recall-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns a fixed vector for any text, or a canned error.
type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: s.vector},
	}, nil
}

func retrievalFixture(embedderVec []float32) (IRetrievalService, *stubEmbedder) {
	corpus := memory.NewCorpusIndex([]*entity.CorpusEntry{
		{Id: 1, Title: "해리포터", Summary: "고아 소년이 마법학교에 입학한다", Vector: []float32{1, 0, 0}},
		{Id: 2, Title: "반지의 제왕", Summary: "절대 반지를 파괴하는 여정", Vector: []float32{0, 1, 0}},
		{Id: 3, Title: "어린 왕자", Summary: "사막에서 만난 소년의 이야기", Vector: []float32{0, 0, 1}},
	})
	emb := &stubEmbedder{vector: embedderVec}
	return NewRetrievalService(emb, corpus), emb
}

func TestRetrieveReturnsRankedCandidates(t *testing.T) {
	svc, _ := retrievalFixture([]float32{1, 0, 0})

	candidates, err := svc.Retrieve(context.Background(), "한 고아소년이 마법사가 되는 소설", 5)
	require.NoError(t, err)
	require.Len(t, candidates, 3, "k beyond corpus size returns what exists")

	assert.Equal(t, "해리포터", candidates[0].Title)
	assert.Equal(t, "고아 소년이 마법학교에 입학한다", candidates[0].Summary)
}

func TestRetrieveIsDeterministic(t *testing.T) {
	svc, _ := retrievalFixture([]float32{1, 0, 0})

	first, err := svc.Retrieve(context.Background(), "같은 줄거리", 5)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := svc.Retrieve(context.Background(), "같은 줄거리", 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRetrieveRejectsBlankQuery(t *testing.T) {
	svc, emb := retrievalFixture([]float32{1, 0, 0})

	for _, query := range []string{"", "   ", "\n\t "} {
		_, err := svc.Retrieve(context.Background(), query, 5)
		require.Error(t, err)
		assert.True(t, serverutils.IsKind(err, serverutils.KindUsage))
	}
	assert.Zero(t, emb.calls, "blank query must not reach the embedding model")
}

func TestRetrievePropagatesEmbeddingFailure(t *testing.T) {
	svc, emb := retrievalFixture(nil)
	emb.err = errors.New("model unavailable")

	candidates, err := svc.Retrieve(context.Background(), "어떤 줄거리", 5)
	require.Error(t, err)
	assert.True(t, serverutils.IsKind(err, serverutils.KindRetrieval))
	assert.Nil(t, candidates, "no partial results on retrieval failure")
}

func TestRetrieveDefaultsTopK(t *testing.T) {
	svc, _ := retrievalFixture([]float32{0, 1, 0})

	candidates, err := svc.Retrieve(context.Background(), "반지 이야기", 0)
	require.NoError(t, err)
	assert.Equal(t, "반지의 제왕", candidates[0].Title)
}
