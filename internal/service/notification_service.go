package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-insights-be/internal/constant"
	"finance-insights-be/internal/pkg/logger"
	"finance-insights-be/internal/websocket"
	"finance-insights-be/pkg/events"
	pktNats "finance-insights-be/pkg/nats"
)

// NotificationDelivery defines how real-time updates reach clients.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID string, notification websocket.Notification)
	Broadcast(notification websocket.Notification)
}

// NotificationService turns bus events into ephemeral client notifications.
// Nothing is persisted; a client that is offline misses the push.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	notif, ok := s.buildNotification(typeCode, payload)
	if !ok {
		// Unknown event types are dropped, not retried.
		return nil
	}

	if s.delivery == nil {
		return nil
	}

	if userId, found := payload["user_id"].(string); found && userId != "" {
		s.delivery.Send(userId, notif)
	} else {
		s.delivery.Broadcast(notif)
	}
	return nil
}

func (s *NotificationService) buildNotification(typeCode string, payload map[string]interface{}) (websocket.Notification, bool) {
	switch typeCode {
	case constant.EventQueryAnswered:
		model, _ := payload["model"].(string)
		return websocket.Notification{
			Type:      typeCode,
			Title:     "Answer ready",
			Message:   fmt.Sprintf("Your question was answered by %s", model),
			Metadata:  payload,
			CreatedAt: time.Now(),
		}, true

	case constant.EventDocumentAnalyzed:
		filename, _ := payload["filename"].(string)
		return websocket.Notification{
			Type:      typeCode,
			Title:     "Document analyzed",
			Message:   fmt.Sprintf("Analysis of %s is complete", filename),
			Metadata:  payload,
			CreatedAt: time.Now(),
		}, true

	default:
		return websocket.Notification{}, false
	}
}
