package mapper

import (
	"novel-recall-be/internal/entity"
	"novel-recall-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type BookMapper struct{}

func NewBookMapper() *BookMapper {
	return &BookMapper{}
}

func (m *BookMapper) ToEntity(b *model.BookEmbedding) *entity.CorpusEntry {
	if b == nil {
		return nil
	}
	return &entity.CorpusEntry{
		Id:        b.Id,
		Title:     b.Title,
		Summary:   b.Summary,
		Vector:    b.EmbeddingValue.Slice(),
		CreatedAt: b.CreatedAt,
	}
}

func (m *BookMapper) ToModel(e *entity.CorpusEntry) *model.BookEmbedding {
	if e == nil {
		return nil
	}
	return &model.BookEmbedding{
		Id:             e.Id,
		Title:          e.Title,
		Summary:        e.Summary,
		EmbeddingValue: pgvector.NewVector(e.Vector),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *BookMapper) ToEntities(books []*model.BookEmbedding) []*entity.CorpusEntry {
	entities := make([]*entity.CorpusEntry, len(books))
	for i, b := range books {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
