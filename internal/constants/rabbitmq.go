package constants

// Обменники
const (
	NotificationsExchange = "grihamate.notifications"
)

// Имена очередей
const (
	QueueNotifications = "notifications"
)

// Ключи маршрутизации
const (
	RoutingKeyNotifications = "notify.user"
)

// Метаданные событий (заголовки event-type / event-version)
const (
	NotificationEventType    = "NotificationEvent"
	NotificationEventVersion = "1.0.0"
)

const (
	NotificationsFinalDLXExchange   = "notifications_final_dlx"
	NotificationsFinalDLQ           = "notifications_final_dlq"
	NotificationsFinalDLQRoutingKey = "notifications.dlq.key"
)
