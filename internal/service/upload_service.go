package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finance-insights-be/internal/dto"
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/pkg/logger"
	"finance-insights-be/internal/repository/memory"
	"finance-insights-be/internal/repository/specification"
	"finance-insights-be/internal/repository/unitofwork"
	"finance-insights-be/pkg/events"
	"finance-insights-be/pkg/extract"
	"finance-insights-be/pkg/nats"
	"finance-insights-be/pkg/rag/executor"
	"finance-insights-be/pkg/rag/history"
	"finance-insights-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadService interface {
	Upload(ctx context.Context, userId, filename string, data []byte, comment string) (*dto.UploadResponse, error)
	GetDocument(ctx context.Context, filename string) (*dto.DocumentDetailResponse, error)
}

type uploadService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  *extract.Registry
	pipeline   *executor.Pipeline
	recorder   *history.Recorder
	publisher  IPublisherService
	cache      *memory.DocumentCache
	natsPub      *nats.Publisher
	uploadDir    string
	previewChars int
	logger       logger.ILogger
}

func NewUploadService(
	uowFactory unitofwork.RepositoryFactory,
	extractor *extract.Registry,
	pipeline *executor.Pipeline,
	recorder *history.Recorder,
	publisher IPublisherService,
	cache *memory.DocumentCache,
	natsPub *nats.Publisher,
	uploadDir string,
	previewChars int,
	log logger.ILogger,
) IUploadService {
	return &uploadService{
		uowFactory:   uowFactory,
		extractor:    extractor,
		pipeline:     pipeline,
		recorder:     recorder,
		publisher:    publisher,
		cache:        cache,
		natsPub:      natsPub,
		uploadDir:    uploadDir,
		previewChars: previewChars,
		logger:       log,
	}
}

func (s *uploadService) Upload(ctx context.Context, userId, filename string, data []byte, comment string) (*dto.UploadResponse, error) {
	if filename == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No selected file")
	}
	if !s.extractor.Supported(filename) {
		ext := strings.TrimPrefix(filepath.Ext(filename), ".")
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Invalid file type: %s. Allowed types: pdf, docx, txt", ext))
	}

	// Keep the raw bytes on disk; the static route serves them back.
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	storedPath := filepath.Join(s.uploadDir, filepath.Base(filename))
	if err := os.WriteFile(storedPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	text, err := s.extractor.Extract(ctx, data, filename)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No text could be extracted from the file: %v", err))
	}
	if strings.TrimSpace(text) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No text could be extracted from the file")
	}

	doc := &entity.Document{
		Id:         uuid.New(),
		Filename:   filepath.Base(filename),
		StoredPath: storedPath,
		Text:       text,
		TextLength: len(text),
		UserId:     userId,
		UploadDate: time.Now().UTC(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	s.cache.Save(doc)

	// Indexing runs in the background so the upload response is not held
	// back by chunk embedding.
	s.publishIndexRequest(ctx, doc.Id)

	result := s.pipeline.AnalyzeDocument(ctx, text, comment)

	title := "[FILE UPLOAD] " + doc.Filename
	if comment != "" {
		title += ": " + comment
	}
	chatId, err := s.recorder.Record(ctx, title, result.Analysis, "chatgpt", "", userId)
	if err != nil {
		s.logger.Warn("upload", "Failed to record upload history", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.publishAnalyzed(ctx, userId, doc, result.IsFinancial)

	return &dto.UploadResponse{
		Filename:   doc.Filename,
		Analysis:   result.Analysis,
		TextLength: doc.TextLength,
		ChatId:     chatId,
	}, nil
}

func (s *uploadService) publishIndexRequest(ctx context.Context, documentId uuid.UUID) {
	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: documentId})
	if err != nil {
		s.logger.Error("upload", "Failed to marshal index message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("upload", "Failed to publish index message", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *uploadService) publishAnalyzed(ctx context.Context, userId string, doc *entity.Document, financial bool) {
	if s.natsPub == nil {
		return
	}
	event := events.NewDocumentAnalyzed(userId, doc.Filename, doc.TextLength, financial)
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.logger.Warn("upload", "Failed to publish document analyzed event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *uploadService) GetDocument(ctx context.Context, filename string) (*dto.DocumentDetailResponse, error) {
	doc, found := s.cache.Get(filename)
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		stored, err := uow.DocumentRepository().FindOne(ctx, specification.ByFilename{Filename: filename})
		if err != nil {
			return nil, fmt.Errorf("fetch document: %w", err)
		}
		if stored == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
		}
		doc = stored
		s.cache.Save(doc)
	}

	preview := doc.Text
	if len(preview) > s.previewChars {
		preview = utils.TruncateRunes(preview, s.previewChars) + "..."
	}

	return &dto.DocumentDetailResponse{
		Filename:    doc.Filename,
		UploadDate:  doc.UploadDate.Format(time.RFC3339),
		TextPreview: preview,
		TextLength:  doc.TextLength,
	}, nil
}
