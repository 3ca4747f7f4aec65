package domain

type NotificationKind string

const (
	// NotifyRoomMatch - объект подошел под RoomRequest или AvailabilitySubscription.
	NotifyRoomMatch NotificationKind = "room_match"
	// NotifyRequestReceived - landlord получил новую заявку на объект.
	NotifyRequestReceived NotificationKind = "request_received"
	// NotifyRequestStatus - seeker-у сообщили про accept/reject его заявки.
	NotifyRequestStatus NotificationKind = "request_status"
	// NotifyAccountVerification - админ верифицировал/отклонил аккаунт.
	NotifyAccountVerification NotificationKind = "account_verification"
	// NotifyPropertyVerification - админ верифицировал/отклонил объект.
	NotifyPropertyVerification NotificationKind = "property_verification"
)

// Notification - событие для диспетчеризации получателю. Доставка best-effort:
// ошибка отправки логируется и не влияет ни на другие уведомления, ни на
// транзакцию, из которой уведомление родилось.
type Notification struct {
	RecipientEmail string            `json:"recipient_email"`
	RecipientName  string            `json:"recipient_name"`
	Kind           NotificationKind  `json:"kind"`
	Data           map[string]string `json:"data"`
}
