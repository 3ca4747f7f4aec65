package usecase

import (
	"context"
	"fmt"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

// VerifyEsewaCallbackUseCase - проверка подписи callback-а шлюза и
// маршрутизация подтверждения: booking идет в жизненный цикл заявки,
// subscription - в апгрейд тарифа landlord-а.
type VerifyEsewaCallbackUseCase struct {
	signer         port.PaymentSignerPort
	confirmBooking usecases_port.ConfirmBookingPaymentUseCasePort
	upgradeSub     usecases_port.UpgradeSubscriptionUseCasePort
}

func NewVerifyEsewaCallbackUseCase(
	signer port.PaymentSignerPort,
	confirmBooking usecases_port.ConfirmBookingPaymentUseCasePort,
	upgradeSub usecases_port.UpgradeSubscriptionUseCasePort,
) *VerifyEsewaCallbackUseCase {
	return &VerifyEsewaCallbackUseCase{
		signer:         signer,
		confirmBooking: confirmBooking,
		upgradeSub:     upgradeSub,
	}
}

func (uc *VerifyEsewaCallbackUseCase) Execute(ctx context.Context, encodedData, signature string) (domain.TransactionRef, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "VerifyEsewaCallback"})

	ucLogger.Info("Use case started: verifying gateway callback", nil)

	ref, err := uc.signer.VerifyCallback(encodedData, signature)
	if err != nil {
		ucLogger.Warn("Callback verification failed", port.Fields{"error": err.Error()})
		return domain.TransactionRef{}, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{
		"kind":      string(ref.Kind),
		"target_id": ref.TargetID.String(),
	})

	switch ref.Kind {
	case domain.TransactionBooking:
		if err := uc.confirmBooking.Execute(ctx, ref.TargetID); err != nil {
			ucLogger.Error("Booking confirmation failed", err, nil)
			return domain.TransactionRef{}, err
		}
	case domain.TransactionSubscription:
		if err := uc.upgradeSub.Execute(ctx, ref.TargetID); err != nil {
			ucLogger.Error("Subscription upgrade failed", err, nil)
			return domain.TransactionRef{}, err
		}
	default:
		return domain.TransactionRef{}, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrInvalid, ref.Kind)
	}

	ucLogger.Info("Use case finished: payment confirmed", nil)
	return ref, nil
}
