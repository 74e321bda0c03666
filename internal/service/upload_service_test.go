package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newPreviewService(previewChars int, doc *entity.Document) IUploadService {
	cache := memory.NewDocumentCache()
	cache.Save(doc)
	return NewUploadService(nil, nil, nil, nil, nil, cache, nil, "uploads", previewChars, noopLogger{})
}

func cachedDoc(text string) *entity.Document {
	return &entity.Document{
		Id:         uuid.New(),
		Filename:   "report.pdf",
		Text:       text,
		TextLength: len(text),
		UploadDate: time.Now(),
	}
}

func TestGetDocumentPreviewUsesConfiguredLength(t *testing.T) {
	svc := newPreviewService(10, cachedDoc(strings.Repeat("a", 40)))

	got, err := svc.GetDocument(context.Background(), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 10)+"...", got.TextPreview)
	assert.Equal(t, 40, got.TextLength)
}

func TestGetDocumentShortTextNotTruncated(t *testing.T) {
	svc := newPreviewService(500, cachedDoc("short text"))

	got, err := svc.GetDocument(context.Background(), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "short text", got.TextPreview)
}
