package port

import "context"

// MailerPort - отправка письма. Используется консьюмером очереди уведомлений,
// а не ядром напрямую.
type MailerPort interface {
	Send(ctx context.Context, to, subject, body string) error
}
