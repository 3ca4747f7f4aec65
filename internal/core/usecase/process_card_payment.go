package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

// ProcessCardPaymentUseCase - mock-обработка карточного платежа для демо-стенда.
// Карты с префиксом 4242 одобряются, остальные Visa/MC/Amex-префиксы
// отклоняются, все прочее считается невалидным номером. Подтверждение
// маршрутизируется так же, как callback шлюза.
type ProcessCardPaymentUseCase struct {
	confirmBooking usecases_port.ConfirmBookingPaymentUseCasePort
	upgradeSub     usecases_port.UpgradeSubscriptionUseCasePort
	clock          port.ClockPort
}

func NewProcessCardPaymentUseCase(
	confirmBooking usecases_port.ConfirmBookingPaymentUseCasePort,
	upgradeSub usecases_port.UpgradeSubscriptionUseCasePort,
	clock port.ClockPort,
) *ProcessCardPaymentUseCase {
	return &ProcessCardPaymentUseCase{
		confirmBooking: confirmBooking,
		upgradeSub:     upgradeSub,
		clock:          clock,
	}
}

func (uc *ProcessCardPaymentUseCase) Execute(ctx context.Context, cardNumber string, order domain.PaymentOrder, targetID uuid.UUID) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ProcessCardPayment",
		"kind":      string(order.Kind),
		"target_id": targetID.String(),
	})

	ucLogger.Info("Use case started: processing card payment", nil)

	if order.Amount <= 0 {
		return "", fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalid)
	}

	normalized := normalizeCardNumber(cardNumber)
	if len(normalized) < 13 || len(normalized) > 19 {
		return "", fmt.Errorf("%w: card number must be 13-19 digits", domain.ErrInvalid)
	}

	switch {
	case strings.HasPrefix(normalized, "4242"):
		// Тестовая карта, платеж одобрен.
	case strings.HasPrefix(normalized, "4"), strings.HasPrefix(normalized, "5"), strings.HasPrefix(normalized, "3"):
		ucLogger.Warn("Card payment declined by issuer", nil)
		return "", fmt.Errorf("%w: card declined", domain.ErrPolicyViolation)
	default:
		return "", fmt.Errorf("%w: unsupported card network", domain.ErrInvalid)
	}

	switch order.Kind {
	case domain.TransactionBooking:
		if err := uc.confirmBooking.Execute(ctx, targetID); err != nil {
			ucLogger.Error("Booking confirmation failed", err, nil)
			return "", err
		}
	case domain.TransactionSubscription:
		if err := uc.upgradeSub.Execute(ctx, targetID); err != nil {
			ucLogger.Error("Subscription upgrade failed", err, nil)
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unknown transaction kind %q", domain.ErrInvalid, order.Kind)
	}

	ref := domain.NewTransactionRef(order.Kind, targetID, uc.clock.Now())
	txnID := "CARD_" + ref.String()

	ucLogger.Info("Use case finished: card payment processed", port.Fields{"transaction_id": txnID})
	return txnID, nil
}

func normalizeCardNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
