package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/messkit/meal-access-service/internal/config"
	"github.com/messkit/meal-access-service/internal/events"
)

// NotificationService forwards domain events to the student-facing push
// channel. Delivery is at-most-once best effort; a failure never rolls
// back or blocks the decision that produced the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMealLogCreated, n.handleMealLogCreated)
	n.dispatcher.Subscribe(events.EventSessionDeclared, n.handleSessionDeclared)
	n.dispatcher.Subscribe(events.EventTokenIssued, n.handleTokenIssued)
}

func (n *NotificationService) handleMealLogCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("MealLogCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSessionDeclared(ctx context.Context, event events.Event) error {
	n.logger.Info("SessionDeclared", zap.String("supervisor_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTokenIssued(ctx context.Context, event events.Event) error {
	n.logger.Debug("TokenIssued", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
