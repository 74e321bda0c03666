package implementation

import (
	"context"
	"fmt"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/mapper"
	"finance-insights-be/internal/model"
	"finance-insights-be/internal/repository/contract"
	"finance-insights-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type NewsEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NewsEmbeddingMapper
}

func NewNewsEmbeddingRepository(db *gorm.DB) contract.NewsEmbeddingRepository {
	return &NewsEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewNewsEmbeddingMapper(),
	}
}

func (r *NewsEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NewsEmbeddingRepositoryImpl) Create(ctx context.Context, article *entity.NewsArticle, embedding []float32) error {
	m := r.mapper.ToModel(article, embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*article = *r.mapper.ToEntity(m)
	return nil
}

func (r *NewsEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, articles []*entity.NewsArticle, embeddings [][]float32) error {
	if len(articles) != len(embeddings) {
		return fmt.Errorf("article/embedding count mismatch: %d vs %d", len(articles), len(embeddings))
	}
	models := make([]*model.NewsEmbedding, len(articles))
	for i, a := range articles {
		models[i] = r.mapper.ToModel(a, embeddings[i])
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*articles[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *NewsEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.NewsEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilar ranks by pgvector cosine distance and returns similarity
// scores alongside the articles. Cosine distance is 1 - cosine_similarity,
// so similarity = 1 - (embedding_value <=> query_vector).
func (r *NewsEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, region string) ([]*entity.ScoredNewsArticle, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.NewsEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("news_embeddings").
		Select("news_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("news_embeddings.deleted_at IS NULL")

	if region != "" {
		query = query.Where("region = ?", region)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredNewsArticle, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredNewsArticle{
			Article:    r.mapper.ToEntity(&res.NewsEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
