package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_common"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_producer"
)

// MessageHandler обрабатывает одно сообщение. nil - ack, ошибка -
// сообщение попадает в политику повторов.
type MessageHandler func(delivery amqp.Delivery) error

// ReliableConsumer - потребитель с изолированным механизмом повторов.
// Каждое сообщение обрабатывается в своей горутине, Close дожидается
// завершения всех обработчиков.
type ReliableConsumer struct {
	cfg       ConsumerConfig
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	handler   MessageHandler
	dlx       *rabbitmq_producer.Publisher
	handlers  sync.WaitGroup
	logger    rabbitmq_common.Logger
}

func NewReliableConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*ReliableConsumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}

	c := &ReliableConsumer{
		cfg:     cfg,
		conn:    conn,
		channel: ch,
		handler: handler,
		logger:  logger,
	}

	if err := c.setupTopology(); err != nil {
		_ = ch.Close()
		return nil, err
	}

	if cfg.EnableRetryMechanism {
		// Отдельный издатель для финального DLX. Обменник уже объявлен
		// в setupTopology, поэтому DeclareExchangeIfMissing выключен.
		dlx, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:       rabbitmq_common.Config{URL: cfg.URL},
			ExchangeName: cfg.FinalDLXExchange,
			Logger:       logger,
		}, connManager)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to create final DLX publisher: %w", err)
		}
		c.dlx = dlx
	}

	return c, nil
}

// setupTopology объявляет очередь, привязку и, если включены повторы,
// retry- и DLQ-инфраструктуру.
func (c *ReliableConsumer) setupTopology() error {
	if c.cfg.PrefetchCount > 0 {
		if err := c.channel.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("consumer: failed to set QoS: %w", err)
		}
	}

	var queueArgs amqp.Table
	if c.cfg.EnableRetryMechanism {
		// Из основной очереди "мертвые" сообщения уходят в retry-обменник
		queueArgs = amqp.Table{"x-dead-letter-exchange": c.cfg.RetryExchange}
	}

	c.queueName = c.cfg.QueueName
	if c.cfg.DeclareQueue {
		q, err := c.channel.QueueDeclare(c.cfg.QueueName, c.cfg.DurableQueue, false, false, false, queueArgs)
		if err != nil {
			return fmt.Errorf("consumer: failed to declare queue %q: %w", c.cfg.QueueName, err)
		}
		c.queueName = q.Name
	}

	if c.cfg.ExchangeNameForBind != "" {
		err := c.channel.QueueBind(c.queueName, c.cfg.RoutingKeyForBind, c.cfg.ExchangeNameForBind, false, nil)
		if err != nil {
			return fmt.Errorf("consumer: failed to bind queue %q to exchange %q: %w", c.queueName, c.cfg.ExchangeNameForBind, err)
		}
	}

	if !c.cfg.EnableRetryMechanism {
		c.logger.Debug("Consumer topology ready", "queue", c.queueName)
		return nil
	}

	// Финальный DLX и DLQ для сообщений, исчерпавших попытки
	if err := c.channel.ExchangeDeclare(c.cfg.FinalDLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("consumer: failed to declare final DLX: %w", err)
	}
	if _, err := c.channel.QueueDeclare(c.cfg.FinalDLQ, true, false, false, false, nil); err != nil {
		return fmt.Errorf("consumer: failed to declare final DLQ: %w", err)
	}
	if err := c.channel.QueueBind(c.cfg.FinalDLQ, c.cfg.FinalDLQRoutingKey, c.cfg.FinalDLXExchange, false, nil); err != nil {
		return fmt.Errorf("consumer: failed to bind final DLQ: %w", err)
	}

	// Wait-очередь с TTL возвращает сообщения в основной обменник
	if err := c.channel.ExchangeDeclare(c.cfg.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("consumer: failed to declare retry exchange: %w", err)
	}
	_, err := c.channel.QueueDeclare(c.cfg.RetryQueue, true, false, false, false, amqp.Table{
		"x-message-ttl":          int32(c.cfg.RetryTTL),
		"x-dead-letter-exchange": c.cfg.ExchangeNameForBind,
	})
	if err != nil {
		return fmt.Errorf("consumer: failed to declare retry-wait queue: %w", err)
	}
	if err := c.channel.QueueBind(c.cfg.RetryQueue, "", c.cfg.RetryExchange, false, nil); err != nil {
		return fmt.Errorf("consumer: failed to bind retry-wait queue: %w", err)
	}

	c.logger.Debug("Consumer topology with retries ready", "queue", c.queueName, "retry_ttl_ms", c.cfg.RetryTTL)
	return nil
}

// StartConsuming блокирует до отмены контекста или обрыва соединения.
func (c *ReliableConsumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.conn == nil || c.conn.IsClosed() {
		return fmt.Errorf("consumer: not connected")
	}

	msgs, err := c.channel.Consume(c.queueName, c.cfg.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer %s: failed to start consuming from %q: %w", c.cfg.ConsumerTag, c.queueName, err)
	}

	c.logger.Info("Waiting for messages", "queue", c.queueName, "consumer_tag", c.cfg.ConsumerTag)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Context cancelled, stopping dispatch loop", "consumer_tag", c.cfg.ConsumerTag)
				return
			case d, ok := <-msgs:
				if !ok {
					c.logger.Info("Deliveries channel closed by broker", "consumer_tag", c.cfg.ConsumerTag)
					return
				}
				c.handlers.Add(1)
				go func(delivery amqp.Delivery) {
					defer c.handlers.Done()
					c.settle(delivery, c.handler(delivery))
				}(d)
			}
		}
	}()

	notifyClose := make(chan *amqp.Error, 1)
	c.conn.NotifyClose(notifyClose)

	select {
	case <-ctx.Done():
		c.logger.Info("Context cancelled, consumer shutting down", "consumer_tag", c.cfg.ConsumerTag)
		return nil
	case amqpErr := <-notifyClose:
		c.logger.Error(amqpErr, "Connection closed while consuming", "consumer_tag", c.cfg.ConsumerTag)
		return amqpErr
	}
}

// settle решает судьбу сообщения по результату обработчика:
// ack при успехе, цикл повторов или финальный DLX при ошибке.
func (c *ReliableConsumer) settle(delivery amqp.Delivery, handlerErr error) {
	if handlerErr == nil {
		_ = delivery.Ack(false)
		return
	}

	c.logger.Error(handlerErr, "Message handler failed", "delivery_tag", delivery.DeliveryTag)

	if !c.cfg.EnableRetryMechanism {
		_ = delivery.Nack(false, false)
		return
	}

	attempts := deathCount(delivery, c.queueName)
	if attempts < int64(c.cfg.MaxRetries) {
		c.logger.Info("Sending message to retry loop", "delivery_tag", delivery.DeliveryTag, "attempts", attempts)
		// Nack без requeue: очередь сама переправит сообщение в retry-обменник
		_ = delivery.Nack(false, false)
		return
	}

	c.logger.Warn("Max retries reached, moving message to final DLQ", "delivery_tag", delivery.DeliveryTag)
	err := c.dlx.Publish(context.Background(), c.cfg.FinalDLQRoutingKey, amqp.Publishing{
		ContentType:  delivery.ContentType,
		Body:         delivery.Body,
		Headers:      delivery.Headers,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		c.logger.Error(err, "Failed to publish to final DLX, message goes back to retry loop", "delivery_tag", delivery.DeliveryTag)
		_ = delivery.Nack(false, false)
		return
	}
	_ = delivery.Ack(false)
}

// deathCount достает из заголовка x-death число смертей сообщения
// в основной очереди.
func deathCount(d amqp.Delivery, queueName string) int64 {
	if d.Headers == nil {
		return 0
	}
	deaths, ok := d.Headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	for _, death := range deaths {
		tbl, ok := death.(amqp.Table)
		if !ok {
			continue
		}
		if queue, ok := tbl["queue"].(string); ok && queue == queueName {
			if count, ok := tbl["count"].(int64); ok {
				return count
			}
		}
	}
	return 0
}

// Close дожидается работающих обработчиков и закрывает канал.
func (c *ReliableConsumer) Close() error {
	c.logger.Debug("Waiting for in-flight message handlers...")
	c.handlers.Wait()

	var firstErr error
	if c.dlx != nil {
		if err := c.dlx.Close(); err != nil {
			c.logger.Error(err, "Error closing final DLX publisher")
			firstErr = err
		}
	}
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error(err, "Error closing consumer channel")
			if firstErr == nil {
				firstErr = err
			}
		}
		c.channel = nil
	}

	c.logger.Info("Consumer closed")
	return firstErr
}
