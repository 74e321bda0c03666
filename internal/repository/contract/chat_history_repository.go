package contract

import (
	"context"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatHistoryRepository interface {
	Create(ctx context.Context, history *entity.ChatHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatHistory, error)

	// Delete removes an entry only when it belongs to the given user.
	// Returns the number of rows removed so callers can 404 on zero.
	Delete(ctx context.Context, id uuid.UUID, userId string) (int64, error)
}
