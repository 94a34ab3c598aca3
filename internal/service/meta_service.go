package service

import (
	"context"

	"novel-recall-be/internal/dto"
	"novel-recall-be/internal/repository/contract"
)

// IMetaService backs the about view: corpus size and the search tip
// shown on the landing page.
type IMetaService interface {
	About(ctx context.Context) (*dto.AboutResponse, error)
}

type metaService struct {
	corpusRepo contract.CorpusRepository
}

func NewMetaService(corpusRepo contract.CorpusRepository) IMetaService {
	return &metaService{corpusRepo: corpusRepo}
}

func (s *metaService) About(ctx context.Context) (*dto.AboutResponse, error) {
	count, err := s.corpusRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AboutResponse{
		BookCount: count,
		SearchTip: "describing the beginning of the story gives better matches than the ending",
	}, nil
}
