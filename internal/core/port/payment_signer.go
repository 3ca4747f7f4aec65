package port

import "github.com/saurav73/GrihaMate/internal/core/domain"

// PaymentSignerPort - криптографическая часть интеграции со шлюзом:
// подпись формы инициации и проверка подписи callback-а.
type PaymentSignerPort interface {
	// SignedForm собирает поля формы eSewa с HMAC-подписью.
	SignedForm(totalAmount string, ref domain.TransactionRef) map[string]string
	// VerifyCallback проверяет подпись, декодирует payload и извлекает
	// типизированную ссылку на транзакцию.
	VerifyCallback(encodedData, signature string) (domain.TransactionRef, error)
}
