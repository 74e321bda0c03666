package entity

import (
	"time"

	"github.com/google/uuid"
)

// NewsArticle is one embedded news item in the retrieval corpus.
// The metadata fields mirror what the seeder ingests from the dataset.
type NewsArticle struct {
	Id              uuid.UUID
	Title           string
	Source          string
	Region          string
	Date            string
	Url             string
	DetailedSummary string
	CompactSummary  string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// ScoredNewsArticle pairs an article with its cosine similarity to a query.
type ScoredNewsArticle struct {
	Article    *NewsArticle
	Similarity float64
}
