package mapper

import (
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type NewsEmbeddingMapper struct{}

func NewNewsEmbeddingMapper() *NewsEmbeddingMapper {
	return &NewsEmbeddingMapper{}
}

func (m *NewsEmbeddingMapper) ToEntity(ne *model.NewsEmbedding) *entity.NewsArticle {
	if ne == nil {
		return nil
	}
	updatedAt := ne.UpdatedAt
	return &entity.NewsArticle{
		Id:              ne.Id,
		Title:           ne.Title,
		Source:          ne.Source,
		Region:          ne.Region,
		Date:            ne.Date,
		Url:             ne.Url,
		DetailedSummary: ne.DetailedSummary,
		CompactSummary:  ne.CompactSummary,
		CreatedAt:       ne.CreatedAt,
		UpdatedAt:       &updatedAt,
	}
}

func (m *NewsEmbeddingMapper) ToModel(a *entity.NewsArticle, embedding []float32) *model.NewsEmbedding {
	if a == nil {
		return nil
	}
	return &model.NewsEmbedding{
		Id:              a.Id,
		Title:           a.Title,
		Source:          a.Source,
		Region:          a.Region,
		Date:            a.Date,
		Url:             a.Url,
		DetailedSummary: a.DetailedSummary,
		CompactSummary:  a.CompactSummary,
		EmbeddingValue:  pgvector.NewVector(embedding),
	}
}
