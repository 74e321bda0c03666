package websocket

import "time"

// Notification is the ephemeral real-time message pushed to clients.
// Nothing here is persisted; missed notifications are simply missed.
type Notification struct {
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
