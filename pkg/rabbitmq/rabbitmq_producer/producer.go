package rabbitmq_producer

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_common"
)

// PublisherConfig описывает обменник, в который публикует издатель.
type PublisherConfig struct {
	rabbitmq_common.Config

	ExchangeName    string
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool

	// Если false, издатель полагается на то, что обменник уже объявлен.
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

// Publisher публикует сообщения в один обменник через общий канал.
type Publisher struct {
	cfg     PublisherConfig
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.Config.Validate(); err != nil {
		return nil, fmt.Errorf("publisher: %w", err)
	}
	if cfg.DeclareExchangeIfMissing && (cfg.ExchangeName == "" || cfg.ExchangeType == "") {
		return nil, fmt.Errorf("publisher: exchange name and type are required to declare an exchange")
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("publisher: failed to get channel from manager: %w", err)
	}

	p := &Publisher{
		cfg:     cfg,
		conn:    conn,
		channel: ch,
		logger:  logger,
	}

	if cfg.DeclareExchangeIfMissing {
		err = ch.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, cfg.DurableExchange, false, false, false, nil)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("publisher: failed to declare exchange %q: %w", cfg.ExchangeName, err)
		}
		logger.Debug("Exchange declared", "name", cfg.ExchangeName, "type", cfg.ExchangeType)
	}

	return p, nil
}

// Publish отправляет сообщение с указанным ключом маршрутизации.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if p.channel == nil || p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("publisher: connection or channel is closed")
	}

	err := p.channel.PublishWithContext(ctx, p.cfg.ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("publisher: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал издателя. Общее соединение остается менеджеру.
func (p *Publisher) Close() error {
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.logger.Error(err, "Error closing publisher channel")
		return err
	}
	p.logger.Info("Publisher closed")
	return nil
}
