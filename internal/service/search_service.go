package service

import (
	"context"
	"fmt"

	"finance-insights-be/internal/dto"
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/pkg/logger"
	"finance-insights-be/internal/repository/specification"
	"finance-insights-be/internal/repository/unitofwork"
	"finance-insights-be/pkg/events"
	"finance-insights-be/pkg/nats"
	"finance-insights-be/pkg/rag/executor"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISearchService interface {
	Ask(ctx context.Context, userId string, req *dto.AskRequest) (*dto.AskResponse, error)
	GetChatHistory(ctx context.Context, userId string) (*dto.GetChatHistoryResponse, error)
	DeleteChat(ctx context.Context, userId string, chatId uuid.UUID) error
}

type searchService struct {
	pipeline   *executor.Pipeline
	uowFactory unitofwork.RepositoryFactory
	natsPub    *nats.Publisher
	logger     logger.ILogger
}

func NewSearchService(
	pipeline *executor.Pipeline,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *nats.Publisher,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		pipeline:   pipeline,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     log,
	}
}

func (s *searchService) Ask(ctx context.Context, userId string, req *dto.AskRequest) (*dto.AskResponse, error) {
	documentName := ""
	if req.IsDocumentFollowUp {
		documentName = req.DocumentName
	}

	result, err := s.pipeline.AnswerQuery(ctx, executor.AnswerQueryRequest{
		Query:        req.Prompt,
		Model:        req.Model,
		Region:       req.Region,
		DocumentName: documentName,
		IsMetaQuery:  req.IsMetaQuery,
		UserId:       userId,
	})
	if err != nil {
		// The answer text was produced but recording it failed. Return the
		// answer anyway; availability over durability here.
		s.logger.Warn("search", "History recording failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.publishAnswered(ctx, userId, req, result.Retrieved)

	return &dto.AskResponse{
		Response: result.Answer,
		ChatId:   result.HistoryId,
	}, nil
}

func (s *searchService) publishAnswered(ctx context.Context, userId string, req *dto.AskRequest, retrieved int) {
	if s.natsPub == nil {
		return
	}
	event := events.NewQueryAnswered(userId, req.Model, req.Region, retrieved)
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.logger.Warn("search", "Failed to publish query answered event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *searchService) GetChatHistory(ctx context.Context, userId string) (*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.ChatHistoryRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	res := &dto.GetChatHistoryResponse{
		History: make([]dto.ChatHistoryEntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		res.History = append(res.History, toHistoryEntryDTO(entry))
	}
	return res, nil
}

func (s *searchService) DeleteChat(ctx context.Context, userId string, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.ChatHistoryRepository().Delete(ctx, chatId, userId)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Chat not found or not authorized")
	}
	return nil
}

func toHistoryEntryDTO(entry *entity.ChatHistory) dto.ChatHistoryEntryResponse {
	messages := make([]dto.ChatMessageDTO, 0, len(entry.Messages))
	for _, m := range entry.Messages {
		messages = append(messages, dto.ChatMessageDTO{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Model:     m.Model,
			Region:    m.Region,
		})
	}

	return dto.ChatHistoryEntryResponse{
		Id:        entry.Id,
		Title:     entry.Title,
		Messages:  messages,
		Model:     entry.Model,
		Region:    entry.Region,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
