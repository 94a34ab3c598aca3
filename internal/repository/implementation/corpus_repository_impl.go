package implementation

import (
	"context"

	"novel-recall-be/internal/mapper"
	"novel-recall-be/internal/model"
	"novel-recall-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookMapper
}

func NewCorpusRepository(db *gorm.DB) contract.CorpusRepository {
	return &CorpusRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookMapper(),
	}
}

func (r *CorpusRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BookEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilar ranks the corpus by pgvector cosine distance
// (embedding_value <=> query). The query vector must be L2-normalized;
// the stored vectors are normalized at seed time.
func (r *CorpusRepositoryImpl) SearchSimilar(ctx context.Context, vector []float32, limit int) ([]*contract.ScoredCorpusEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	type row struct {
		model.BookEmbedding
		Distance float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("book_embeddings").
		Select("book_embeddings.*, embedding_value <=> ? as distance", queryVector).
		Order("distance ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCorpusEntry, len(rows))
	for i, res := range rows {
		scored[i] = &contract.ScoredCorpusEntry{
			Entry:    r.mapper.ToEntity(&res.BookEmbedding),
			Distance: res.Distance,
		}
	}
	return scored, nil
}
