package service

import (
	"context"
	"strings"

	"novel-recall-be/internal/entity"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/internal/repository/contract"
	"novel-recall-be/pkg/embedding"
)

const DefaultTopK = 5

// IRetrievalService embeds a story description and returns the k
// nearest corpus novels, ranked best-first. Pure function of
// (queryText, k); safe for concurrent use across sessions.
type IRetrievalService interface {
	Retrieve(ctx context.Context, queryText string, k int) ([]entity.Candidate, error)
}

type retrievalService struct {
	embeddingProvider embedding.EmbeddingProvider
	corpusRepo        contract.CorpusRepository
}

func NewRetrievalService(
	embeddingProvider embedding.EmbeddingProvider,
	corpusRepo contract.CorpusRepository,
) IRetrievalService {
	return &retrievalService{
		embeddingProvider: embeddingProvider,
		corpusRepo:        corpusRepo,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, queryText string, k int) ([]entity.Candidate, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, serverutils.NewUsageError("story text is required")
	}
	if k <= 0 {
		k = DefaultTopK
	}

	// The provider returns a unit vector, so index distance is true
	// cosine distance.
	res, err := s.embeddingProvider.Generate(queryText, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, serverutils.NewRetrievalError(err)
	}

	scored, err := s.corpusRepo.SearchSimilar(ctx, res.Embedding.Values, k)
	if err != nil {
		return nil, serverutils.NewRetrievalError(err)
	}

	// Join hits back to (title, summary) pairs, preserving index rank.
	candidates := make([]entity.Candidate, len(scored))
	for i, hit := range scored {
		candidates[i] = entity.Candidate{
			Title:   hit.Entry.Title,
			Summary: hit.Entry.Summary,
		}
	}
	return candidates, nil
}
