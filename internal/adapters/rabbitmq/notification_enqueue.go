package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saurav73/GrihaMate/internal/constants"
	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/contracts"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_producer"
)

// NotificationDispatcherAdapter - исходящий адаптер NotifierPort.
// Кладет уведомление в очередь, доставкой занимается консьюмер.
type NotificationDispatcherAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewNotificationDispatcherAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*NotificationDispatcherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &NotificationDispatcherAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *NotificationDispatcherAdapter) Notify(ctx context.Context, n domain.Notification) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "NotificationDispatcherAdapter",
		"routing_key": a.routingKey,
		"recipient":   n.RecipientEmail,
		"kind":        string(n.Kind),
	})

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal notification: %w", err)
	}

	// Проверяем по схеме до публикации, чтобы невалидное событие
	// не доехало до консьюмера
	if err := contracts.ValidateEvent(constants.NotificationEventType, constants.NotificationEventVersion, body); err != nil {
		adapterLogger.Error("Notification failed schema validation, not publishing", err, nil)
		return fmt.Errorf("rabbitmq adapter: notification failed schema validation: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    constants.NotificationEventType,
			"event-version": constants.NotificationEventVersion,
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish notification", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish notification for %s: %w", n.RecipientEmail, err)
	}

	adapterLogger.Debug("Notification enqueued", nil)
	return nil
}
