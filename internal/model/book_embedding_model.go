package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type BookEmbedding struct {
	Id             int             `gorm:"primaryKey;autoIncrement:false"`
	Title          string          `gorm:"type:text;not null"`
	Summary        string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // KoSimCSE-roberta emits 768 dimensions
	Source         datatypes.JSON  `gorm:"type:jsonb"`       // raw dataset record, kept for reseeding
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (BookEmbedding) TableName() string {
	return "book_embeddings"
}
