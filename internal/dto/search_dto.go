package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Model  string `json:"model" validate:"required"`
	Region string `json:"region"`

	// Document follow-up questions stay grounded in one uploaded document.
	IsDocumentFollowUp bool   `json:"isDocumentFollowUp"`
	DocumentName       string `json:"documentName"`

	// Meta queries are answered about the system itself, without retrieval.
	IsMetaQuery bool `json:"isMetaQuery"`
}

type AskResponse struct {
	Response string    `json:"response"`
	ChatId   uuid.UUID `json:"chatId"`
}

type ChatMessageDTO struct {
	Id        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model,omitempty"`
	Region    string `json:"region,omitempty"`
}

type ChatHistoryEntryResponse struct {
	Id        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Messages  []ChatMessageDTO `json:"messages"`
	Model     string           `json:"model"`
	Region    string           `json:"region"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

type GetChatHistoryResponse struct {
	History []ChatHistoryEntryResponse `json:"history"`
}

type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
