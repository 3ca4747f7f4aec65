package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// ConfirmBookingPaymentUseCase - фиксация оплаты заявки после подтверждения
// шлюза. Идемпотентен: повторное подтверждение переписывает rented-метку,
// но не меняет итоговое состояние.
type ConfirmBookingPaymentUseCase struct {
	requestRepo  port.PropertyRequestRepositoryPort
	propertyRepo port.PropertyRepositoryPort
	clock        port.ClockPort
}

func NewConfirmBookingPaymentUseCase(requestRepo port.PropertyRequestRepositoryPort, propertyRepo port.PropertyRepositoryPort, clock port.ClockPort) *ConfirmBookingPaymentUseCase {
	return &ConfirmBookingPaymentUseCase{
		requestRepo:  requestRepo,
		propertyRepo: propertyRepo,
		clock:        clock,
	}
}

func (uc *ConfirmBookingPaymentUseCase) Execute(ctx context.Context, requestID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ConfirmBookingPayment",
		"request_id": requestID.String(),
	})

	ucLogger.Info("Use case started: confirming booking payment", nil)

	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching request", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		return domain.ErrRequestNotFound
	}
	if request.Status == domain.RequestRejected {
		ucLogger.Warn("Payment confirmation rejected: request was rejected", nil)
		return domain.ErrConflict
	}

	now := uc.clock.Now()
	paidAt := now.UTC()
	request.Status = domain.RequestPaid
	request.PaidAt = &paidAt
	request.UpdatedAt = now.UTC()
	if err := uc.requestRepo.Save(ctx, request); err != nil {
		ucLogger.Error("Repository failed to save request", err, nil)
		return err
	}

	property, err := uc.propertyRepo.FindByID(ctx, request.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return domain.ErrPropertyNotFound
	}

	// Оплата всегда переписывает rented-метку: блокировка отсчитывается
	// от момента оплаты, а не от accept-а.
	property.MarkRented(now, true)
	property.UpdatedAt = now.UTC()
	if err := uc.propertyRepo.Save(ctx, property); err != nil {
		ucLogger.Error("Repository failed to save property", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: booking payment confirmed", nil)
	return nil
}
