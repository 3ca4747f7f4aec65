package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// InitiateEsewaPaymentUseCase готовит подписанную форму для редиректа на eSewa.
type InitiateEsewaPaymentUseCase struct {
	signer port.PaymentSignerPort
	clock  port.ClockPort
}

func NewInitiateEsewaPaymentUseCase(signer port.PaymentSignerPort, clock port.ClockPort) *InitiateEsewaPaymentUseCase {
	return &InitiateEsewaPaymentUseCase{signer: signer, clock: clock}
}

func (uc *InitiateEsewaPaymentUseCase) Execute(ctx context.Context, order domain.PaymentOrder, targetID uuid.UUID) (map[string]string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "InitiateEsewaPayment",
		"kind":      string(order.Kind),
		"target_id": targetID.String(),
	})

	if order.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalid)
	}
	if order.Kind != domain.TransactionBooking && order.Kind != domain.TransactionSubscription {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrInvalid, order.Kind)
	}

	ref := domain.NewTransactionRef(order.Kind, targetID, uc.clock.Now())
	form := uc.signer.SignedForm(strconv.FormatInt(order.Amount, 10), ref)

	ucLogger.Info("Payment form prepared", port.Fields{"transaction_uuid": ref.String()})
	return form, nil
}
