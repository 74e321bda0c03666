package contract

import (
	"context"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/specification"
)

// NewsEmbeddingRepository is the vector-store access contract.
// Similarity search is ranked by cosine distance, nearest first.
type NewsEmbeddingRepository interface {
	Create(ctx context.Context, article *entity.NewsArticle, embedding []float32) error
	CreateBulk(ctx context.Context, articles []*entity.NewsArticle, embeddings [][]float32) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilar returns the top-k nearest articles with similarity scores.
	// When region is non-empty it is applied as an equality filter.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, region string) ([]*entity.ScoredNewsArticle, error)
}
