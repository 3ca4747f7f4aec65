package rabbitmq_common

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 5 * time.Second

// ConnectionManager держит единственное соединение с брокером на весь
// процесс. Издатели и потребители берут из него отдельные каналы.
type ConnectionManager struct {
	url    string
	conn   *amqp.Connection
	mutex  sync.Mutex
	closed bool

	Logger Logger
}

var (
	managerInstance *ConnectionManager
	once            sync.Once
)

// GetManager возвращает глобальный экземпляр менеджера (синглтон).
func GetManager(url string, logger Logger) (*ConnectionManager, error) {
	var initErr error

	once.Do(func() {
		if logger == nil {
			logger = NewNoopLogger()
		}
		managerInstance = &ConnectionManager{
			url:    url,
			Logger: logger,
		}
		if err := managerInstance.connect(); err != nil {
			logger.Error(err, "Initial RabbitMQ connection failed")
			initErr = fmt.Errorf("initial connection failed: %w", err)
		}
	})

	if initErr != nil {
		return nil, initErr
	}
	return managerInstance, nil
}

// connect устанавливает соединение и запускает наблюдателя за обрывом.
// Вызывается под mutex либо до того, как менеджер отдан наружу.
func (m *ConnectionManager) connect() error {
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	m.conn = conn
	m.Logger.Debug("RabbitMQ connection established")

	go m.watch(conn)
	return nil
}

// watch ждет обрыва соединения и переподключается с паузой между попытками.
func (m *ConnectionManager) watch(conn *amqp.Connection) {
	amqpErr := <-conn.NotifyClose(make(chan *amqp.Error, 1))
	if amqpErr == nil {
		// Штатное закрытие через Close
		return
	}
	m.Logger.Warn("RabbitMQ connection lost", "reason", amqpErr.Error())

	for {
		time.Sleep(reconnectDelay)

		m.mutex.Lock()
		if m.closed {
			m.mutex.Unlock()
			return
		}
		err := m.connect()
		m.mutex.Unlock()

		if err == nil {
			m.Logger.Info("RabbitMQ connection restored")
			return
		}
		m.Logger.Error(err, "Reconnect attempt failed")
	}
}

// GetChannel открывает новый канал поверх общего соединения.
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.conn == nil || m.conn.IsClosed() {
		if m.closed {
			return nil, nil, fmt.Errorf("connection manager is closed")
		}
		if err := m.connect(); err != nil {
			return nil, nil, err
		}
	}

	ch, err := m.conn.Channel()
	if err != nil {
		return m.conn, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return m.conn, ch, nil
}

// Close закрывает общее соединение и останавливает переподключения.
func (m *ConnectionManager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closed = true
	if m.conn == nil || m.conn.IsClosed() {
		return nil
	}

	if err := m.conn.Close(); err != nil {
		m.Logger.Error(err, "Failed to close RabbitMQ connection")
		return err
	}
	m.Logger.Debug("RabbitMQ connection closed")
	return nil
}
