package mapper

import (
	"encoding/json"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/model"

	"gorm.io/datatypes"
)

type ChatHistoryMapper struct{}

func NewChatHistoryMapper() *ChatHistoryMapper {
	return &ChatHistoryMapper{}
}

func (m *ChatHistoryMapper) ToEntity(h *model.ChatHistory) *entity.ChatHistory {
	if h == nil {
		return nil
	}
	var messages []entity.ChatHistoryMessage
	if len(h.Messages) > 0 {
		// Unreadable payloads degrade to an empty message list rather than failing the read
		_ = json.Unmarshal(h.Messages, &messages)
	}
	updatedAt := h.UpdatedAt
	return &entity.ChatHistory{
		Id:        h.Id,
		UserId:    h.UserId,
		Title:     h.Title,
		Messages:  messages,
		Model:     h.Model,
		Region:    h.Region,
		CreatedAt: h.CreatedAt,
		UpdatedAt: &updatedAt,
	}
}

func (m *ChatHistoryMapper) ToModel(h *entity.ChatHistory) (*model.ChatHistory, error) {
	if h == nil {
		return nil, nil
	}
	payload, err := json.Marshal(h.Messages)
	if err != nil {
		return nil, err
	}
	return &model.ChatHistory{
		Id:       h.Id,
		UserId:   h.UserId,
		Title:    h.Title,
		Messages: datatypes.JSON(payload),
		Model:    h.Model,
		Region:   h.Region,
	}, nil
}
