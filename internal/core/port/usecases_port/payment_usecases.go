package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

// InitiateEsewaPaymentUseCasePort - подготовка подписанной формы для шлюза.
// targetID - id заявки (booking) или пользователя (subscription).
type InitiateEsewaPaymentUseCasePort interface {
	Execute(ctx context.Context, order domain.PaymentOrder, targetID uuid.UUID) (map[string]string, error)
}

// VerifyEsewaCallbackUseCasePort - проверка подписи callback-а и маршрутизация
// подтверждения по типу транзакции.
type VerifyEsewaCallbackUseCasePort interface {
	Execute(ctx context.Context, encodedData, signature string) (domain.TransactionRef, error)
}

// ProcessCardPaymentUseCasePort - mock-обработка карточного платежа
// (тестовые карты), с той же маршрутизацией подтверждения.
type ProcessCardPaymentUseCasePort interface {
	Execute(ctx context.Context, cardNumber string, order domain.PaymentOrder, targetID uuid.UUID) (string, error)
}
