package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatHistoryMessage is one message inside a recorded exchange.
// The shape is preserved as-is in the JSONB column so the client can
// render history entries without another mapping step.
type ChatHistoryMessage struct {
	Id        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model,omitempty"`
	Region    string `json:"region,omitempty"`
}

// ChatHistory is one recorded (query, response) exchange.
type ChatHistory struct {
	Id        uuid.UUID
	UserId    string
	Title     string
	Messages  []ChatHistoryMessage
	Model     string
	Region    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
