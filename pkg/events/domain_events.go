package events

import (
	"time"

	"finance-insights-be/internal/constant"
)

// NewQueryAnswered is emitted after a chat query completes the full
// retrieve-dispatch-sanitize cycle.
func NewQueryAnswered(userId, model, region string, retrieved int) Event {
	return BaseEvent{
		Type: constant.EventQueryAnswered,
		Data: map[string]interface{}{
			"user_id":   userId,
			"model":     model,
			"region":    region,
			"retrieved": retrieved,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentAnalyzed is emitted after an uploaded document finished analysis.
func NewDocumentAnalyzed(userId, filename string, textLength int, financial bool) Event {
	return BaseEvent{
		Type: constant.EventDocumentAnalyzed,
		Data: map[string]interface{}{
			"user_id":     userId,
			"filename":    filename,
			"text_length": textLength,
			"financial":   financial,
		},
		OccurredAt: time.Now(),
	}
}
