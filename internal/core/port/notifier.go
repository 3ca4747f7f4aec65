package port

import (
	"context"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

// NotifierPort - диспетчеризация уведомления получателю (через очередь).
// Контракт best-effort: вызывающий use case логирует ошибку и продолжает,
// доставка одному получателю не должна влиять на остальных.
type NotifierPort interface {
	Notify(ctx context.Context, n domain.Notification) error
}
