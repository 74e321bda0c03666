package history

import (
	"context"
	"fmt"
	"time"

	"finance-insights-be/internal/constant"
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/contract"
	"finance-insights-be/pkg/rag/response"

	"github.com/google/uuid"
)

const titleMaxChars = 50

// Recorder persists one (query, response) exchange per successful pipeline
// run. The response is sanitized once more before it is written; history must
// never store reasoning artifacts.
type Recorder struct {
	repo contract.ChatHistoryRepository
}

func NewRecorder(repo contract.ChatHistoryRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Record stores the exchange and returns the new history entry id.
func (r *Recorder) Record(ctx context.Context, query, answer, model, region, userId string) (uuid.UUID, error) {
	if region == "" {
		region = constant.RegionGlobal
	}
	if userId == "" {
		userId = "anonymous"
	}

	cleaned := response.Sanitize(answer)
	now := time.Now().UTC()
	nowMs := now.UnixMilli()

	title := query
	if len(title) > titleMaxChars {
		title = title[:titleMaxChars] + "..."
	}

	entry := &entity.ChatHistory{
		Id:     uuid.New(),
		UserId: userId,
		Title:  title,
		Messages: []entity.ChatHistoryMessage{
			{
				Id:        fmt.Sprintf("msg-%d-user", nowMs),
				Role:      constant.ChatMessageRoleUser,
				Content:   query,
				Timestamp: now.Format(time.RFC3339),
			},
			{
				Id:        fmt.Sprintf("msg-%d-assistant", nowMs),
				Role:      constant.ChatMessageRoleAssistant,
				Content:   cleaned,
				Timestamp: now.Format(time.RFC3339),
				Model:     model,
				Region:    region,
			},
		},
		Model:     model,
		Region:    region,
		CreatedAt: now,
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		return uuid.Nil, fmt.Errorf("save history: %w", err)
	}

	return entry.Id, nil
}
