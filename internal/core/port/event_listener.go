package port

import "context"

// EventListenerPort - фоновый слушатель (консьюмер очереди).
// Start блокирует до отмены контекста или фатальной ошибки соединения.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
