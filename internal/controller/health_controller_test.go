package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"finance-insights-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealthService struct {
	lastCheckRag    bool
	lastCheckUpload bool
}

func (f *fakeHealthService) Check(ctx context.Context, checkRag, checkUpload bool) *dto.HealthResponse {
	f.lastCheckRag = checkRag
	f.lastCheckUpload = checkUpload

	res := &dto.HealthResponse{Status: "healthy", Api: "running"}
	if checkRag {
		res.Rag = &dto.SubsystemHealth{Status: "healthy", Message: "Retrieval setup is working properly", DocumentCount: 42}
	}
	if checkUpload {
		res.Upload = &dto.SubsystemHealth{Status: "healthy", Message: "Document upload system is operational"}
	}
	return res
}

func TestHealthCheckBasic(t *testing.T) {
	svc := &fakeHealthService{}
	app := fiber.New()
	NewHealthController(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "running", body.Api)
	assert.Nil(t, body.Rag)
	assert.Nil(t, body.Upload)
	assert.False(t, svc.lastCheckRag)
}

func TestHealthCheckSubsystems(t *testing.T) {
	svc := &fakeHealthService{}
	app := fiber.New()
	NewHealthController(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health?check_rag=true&check_upload=true", nil), -1)
	require.NoError(t, err)

	raw, _ := io.ReadAll(resp.Body)
	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotNil(t, body.Rag)
	require.NotNil(t, body.Upload)
	assert.Equal(t, int64(42), body.Rag.DocumentCount)
	assert.True(t, svc.lastCheckRag)
	assert.True(t, svc.lastCheckUpload)
}
