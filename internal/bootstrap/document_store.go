package bootstrap

import (
	"context"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/contract"
	"finance-insights-be/internal/repository/memory"
	"finance-insights-be/internal/repository/specification"
)

// cachedDocumentStore resolves document-override lookups cache-first, then
// falls through to the repository.
type cachedDocumentStore struct {
	cache *memory.DocumentCache
	repo  contract.DocumentRepository
}

func (s *cachedDocumentStore) FindByFilename(ctx context.Context, filename string) (*entity.Document, error) {
	if doc, ok := s.cache.Get(filename); ok {
		return doc, nil
	}

	doc, err := s.repo.FindOne(ctx, specification.ByFilename{Filename: filename})
	if err != nil {
		return nil, err
	}
	if doc != nil {
		s.cache.Save(doc)
	}
	return doc, nil
}
