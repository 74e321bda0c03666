package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type NewsEmbedding struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title           string          `gorm:"type:text"`
	Source          string          `gorm:"type:text"`
	Region          string          `gorm:"type:text;index"` // Equality filter target for regional retrieval
	Date            string          `gorm:"type:text"`
	Url             string          `gorm:"type:text"`
	DetailedSummary string          `gorm:"type:text"`
	CompactSummary  string          `gorm:"type:text"`
	EmbeddingValue  pgvector.Vector `gorm:"type:vector(1536)"` // OpenAI text-embedding-3-small uses 1536 dimensions
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

func (NewsEmbedding) TableName() string {
	return "news_embeddings"
}
