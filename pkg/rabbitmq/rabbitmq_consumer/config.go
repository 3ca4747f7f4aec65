package rabbitmq_consumer

import (
	"fmt"

	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_common"
)

// ConsumerConfig описывает очередь, ее привязку и политику повторов.
type ConsumerConfig struct {
	rabbitmq_common.Config

	QueueName    string
	DeclareQueue bool
	DurableQueue bool

	// Привязка очереди к обменнику. Пустое имя - без привязки.
	ExchangeNameForBind string
	RoutingKeyForBind   string

	PrefetchCount int
	ConsumerTag   string

	// Политика повторов: упавшее сообщение уходит через retry-обменник в
	// wait-очередь с TTL и возвращается в основной обменник. После
	// MaxRetries попыток сообщение публикуется в финальный DLX.
	EnableRetryMechanism bool
	RetryExchange        string
	RetryQueue           string
	RetryTTL             int // миллисекунды
	FinalDLXExchange     string
	FinalDLQ             string
	FinalDLQRoutingKey   string
	MaxRetries           int

	Logger rabbitmq_common.Logger
}

func (cfg ConsumerConfig) validate() error {
	if err := cfg.Config.Validate(); err != nil {
		return fmt.Errorf("consumer: %w", err)
	}
	if cfg.QueueName == "" && !cfg.DeclareQueue {
		return fmt.Errorf("consumer: queue name is required when DeclareQueue is false")
	}
	if cfg.EnableRetryMechanism {
		if cfg.RetryExchange == "" || cfg.RetryQueue == "" {
			return fmt.Errorf("consumer: retry exchange and retry queue are required when retry is enabled")
		}
		if cfg.FinalDLXExchange == "" || cfg.FinalDLQ == "" {
			return fmt.Errorf("consumer: final DLX and DLQ are required when retry is enabled")
		}
		if cfg.MaxRetries <= 0 {
			return fmt.Errorf("consumer: MaxRetries must be positive when retry is enabled")
		}
	}
	return nil
}
