package unitofwork

import (
	"context"

	"finance-insights-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NewsEmbeddingRepository() contract.NewsEmbeddingRepository
	DocumentRepository() contract.DocumentRepository
	ChatHistoryRepository() contract.ChatHistoryRepository
}
