package service

import (
	"context"
	"fmt"

	"finance-insights-be/internal/dto"
	"finance-insights-be/internal/repository/unitofwork"
)

type IHealthService interface {
	Check(ctx context.Context, checkRag, checkUpload bool) *dto.HealthResponse
}

type healthService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHealthService(uowFactory unitofwork.RepositoryFactory) IHealthService {
	return &healthService{uowFactory: uowFactory}
}

func (s *healthService) Check(ctx context.Context, checkRag, checkUpload bool) *dto.HealthResponse {
	res := &dto.HealthResponse{
		Status: "healthy",
		Api:    "running",
	}

	if checkRag {
		res.Rag = s.checkRag(ctx)
	}
	if checkUpload {
		res.Upload = s.checkUpload(ctx)
	}

	return res
}

func (s *healthService) checkRag(ctx context.Context) *dto.SubsystemHealth {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.NewsEmbeddingRepository().Count(ctx)
	if err != nil {
		return &dto.SubsystemHealth{
			Status:  "error",
			Message: fmt.Sprintf("Failed to verify retrieval setup: %v", err),
		}
	}

	if count == 0 {
		return &dto.SubsystemHealth{
			Status:  "warning",
			Message: "Vector table exists but contains no documents",
		}
	}

	return &dto.SubsystemHealth{
		Status:        "healthy",
		Message:       "Retrieval setup is working properly",
		DocumentCount: count,
	}
}

func (s *healthService) checkUpload(ctx context.Context) *dto.SubsystemHealth {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		return &dto.SubsystemHealth{
			Status:  "error",
			Message: fmt.Sprintf("Failed to verify upload system: %v", err),
		}
	}

	return &dto.SubsystemHealth{
		Status:        "healthy",
		Message:       "Document upload system is operational",
		DocumentCount: count,
	}
}
