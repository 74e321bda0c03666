package contract

import (
	"context"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/specification"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
