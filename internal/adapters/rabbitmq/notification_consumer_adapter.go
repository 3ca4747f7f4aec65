package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/contracts"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_common"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_consumer"
)

// NotificationConsumerAdapter - входящий адаптер, который слушает очередь
// уведомлений и доставляет их получателям по почте.
type NotificationConsumerAdapter struct {
	consumer rabbitmq_consumer.Consumer
	mailer   port.MailerPort
	logger   port.LoggerPort
}

func NewNotificationConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	mailer port.MailerPort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*NotificationConsumerAdapter, error) {

	adapter := &NotificationConsumerAdapter{
		mailer: mailer,
		logger: logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewReliableConsumer(consumerCfg, adapter.handleMessage, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for notifications: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

// handleMessage обрабатывает одно сообщение. Ошибка возвращает сообщение
// в очередь (и в итоге в DLX, если ретраи исчерпаны).
func (a *NotificationConsumerAdapter) handleMessage(d amqp.Delivery) error {
	traceID, _ := d.Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"message_id":   d.MessageId,
		"adapter_name": "NotificationConsumerAdapter",
	})

	ctx := context.Background()
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return err
	}

	var n domain.Notification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		return fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	subject, body := renderNotification(n)

	if err := a.mailer.Send(ctx, n.RecipientEmail, subject, body); err != nil {
		msgLogger.Error("Failed to deliver notification email", err, port.Fields{
			"recipient": n.RecipientEmail,
			"kind":      string(n.Kind),
		})
		return err
	}

	msgLogger.Info("Notification delivered", port.Fields{
		"recipient": n.RecipientEmail,
		"kind":      string(n.Kind),
	})
	return nil
}

// renderNotification собирает тему и текст письма по типу уведомления.
func renderNotification(n domain.Notification) (subject, body string) {
	greeting := fmt.Sprintf("Dear %s,\n\n", n.RecipientName)

	switch n.Kind {
	case domain.NotifyRoomMatch:
		subject = fmt.Sprintf("New property matching your search: %s", n.Data["title"])
		body = greeting + fmt.Sprintf(
			"A new property matching your search criteria is now available.\n\n"+
				"Title: %s\nLocation: %s, %s\nPrice: NPR %s per month\nType: %s\n\n"+
				"Log in to GrihaMate to view the listing and send a request.",
			n.Data["title"], n.Data["district"], n.Data["city"], n.Data["price"], n.Data["type"])

	case domain.NotifyRequestReceived:
		subject = fmt.Sprintf("New rental request for %s", n.Data["property_title"])
		body = greeting + fmt.Sprintf(
			"%s has sent a rental request for your property %q.\n\n"+
				"Log in to GrihaMate to review and respond to the request.",
			n.Data["seeker_name"], n.Data["property_title"])

	case domain.NotifyRequestStatus:
		subject = fmt.Sprintf("Your rental request was %s", n.Data["status"])
		body = greeting + fmt.Sprintf(
			"Your rental request for %q has been %s by the landlord.\n\n"+
				"Log in to GrihaMate for the details.",
			n.Data["property_title"], n.Data["status"])

	case domain.NotifyAccountVerification:
		subject = fmt.Sprintf("Your GrihaMate account verification was %s", n.Data["status"])
		body = greeting + fmt.Sprintf(
			"An administrator has reviewed your account documents. Verification status: %s.",
			n.Data["status"])

	case domain.NotifyPropertyVerification:
		subject = fmt.Sprintf("Your listing verification was %s", n.Data["status"])
		body = greeting + fmt.Sprintf(
			"An administrator has reviewed your listing %q. Verification status: %s.",
			n.Data["title"], n.Data["status"])

	default:
		subject = "GrihaMate notification"
		body = greeting + "You have a new notification on GrihaMate."
	}

	body += "\n\nThe GrihaMate Team"
	return subject, body
}

// Start реализует EventListenerPort, запуская прослушивание очереди.
func (a *NotificationConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort, корректно останавливая консьюмера.
func (a *NotificationConsumerAdapter) Close() error {
	return a.consumer.Close()
}
