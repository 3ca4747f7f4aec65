package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// UpdateRequestStatusUseCase - accept/reject заявки владельцем объекта.
// Accept бронирует объект (RENTED), reject возвращает его в AVAILABLE,
// только если нет других живых заявок и не действует блокировка аренды.
type UpdateRequestStatusUseCase struct {
	requestRepo  port.PropertyRequestRepositoryPort
	propertyRepo port.PropertyRepositoryPort
	userRepo     port.UserRepositoryPort
	notifier     port.NotifierPort
	clock        port.ClockPort
}

func NewUpdateRequestStatusUseCase(
	requestRepo port.PropertyRequestRepositoryPort,
	propertyRepo port.PropertyRepositoryPort,
	userRepo port.UserRepositoryPort,
	notifier port.NotifierPort,
	clock port.ClockPort,
) *UpdateRequestStatusUseCase {
	return &UpdateRequestStatusUseCase{
		requestRepo:  requestRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		clock:        clock,
	}
}

func (uc *UpdateRequestStatusUseCase) Execute(ctx context.Context, actorID, requestID uuid.UUID, status domain.RequestStatus) (*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateRequestStatus",
		"request_id": requestID.String(),
		"status":     string(status),
	})

	ucLogger.Info("Use case started: updating request status", nil)

	if status != domain.RequestAccepted && status != domain.RequestRejected {
		return nil, fmt.Errorf("%w: landlord may only accept or reject a request", domain.ErrInvalid)
	}

	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		return nil, domain.ErrRequestNotFound
	}

	property, err := uc.propertyRepo.FindByID(ctx, request.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if property.LandlordID != actorID {
		ucLogger.Warn("Status update rejected: actor is not the property owner", nil)
		return nil, domain.ErrUnauthorized
	}

	if status == domain.RequestAccepted && request.Status != domain.RequestPending {
		ucLogger.Warn("Status update rejected: only pending requests can be accepted", nil)
		return nil, domain.ErrConflict
	}

	switch status {
	case domain.RequestAccepted:
		if err := uc.accept(ctx, ucLogger, request, property); err != nil {
			return nil, err
		}
	case domain.RequestRejected:
		if err := uc.reject(ctx, ucLogger, request, property); err != nil {
			return nil, err
		}
	}

	uc.notifySeeker(ctx, ucLogger, request, property)

	ucLogger.Info("Use case finished: request status updated", nil)
	return request, nil
}

func (uc *UpdateRequestStatusUseCase) accept(ctx context.Context, logger port.LoggerPort, request *domain.PropertyRequest, property *domain.Property) error {
	now := uc.clock.Now()
	request.Status = domain.RequestAccepted
	request.UpdatedAt = now.UTC()
	if err := uc.requestRepo.Save(ctx, request); err != nil {
		logger.Error("Repository failed to save request", err, nil)
		return err
	}

	property.MarkRented(now, false)
	property.UpdatedAt = now.UTC()
	if err := uc.propertyRepo.Save(ctx, property); err != nil {
		logger.Error("Repository failed to save property after accept", err, nil)
		return err
	}
	return nil
}

// reject снимает заявку и решает судьбу объекта: возврат в AVAILABLE
// разрешен, только если по объекту нет других accepted/paid заявок
// и не действует блокировка после оплаченной аренды.
func (uc *UpdateRequestStatusUseCase) reject(ctx context.Context, logger port.LoggerPort, request *domain.PropertyRequest, property *domain.Property) error {
	now := uc.clock.Now()
	// Отклонить можно и оплаченную заявку, но факт оплаты остается
	// в истории объекта и продолжает удерживать блокировку аренды.
	everPaid := request.WasPaid()
	request.Status = domain.RequestRejected
	request.UpdatedAt = now.UTC()
	if err := uc.requestRepo.Save(ctx, request); err != nil {
		logger.Error("Repository failed to save request", err, nil)
		return err
	}

	if property.Status != domain.StatusRented {
		return nil
	}

	others, err := uc.requestRepo.FindByProperty(ctx, property.ID)
	if err != nil {
		logger.Error("Repository failed while fetching sibling requests", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	for _, other := range others {
		if other.ID == request.ID {
			continue
		}
		if other.WasPaid() {
			everPaid = true
		}
		if other.Status == domain.RequestAccepted || other.Status == domain.RequestPaid {
			// Объект держит другая заявка, статус не трогаем.
			logger.Info("Property stays rented: another active booking exists", port.Fields{"holding_request_id": other.ID.String()})
			return nil
		}
	}

	if !property.CanRevertToAvailable(now, everPaid) {
		logger.Info("Property stays rented: rent lock is active", port.Fields{"days_remaining": property.DaysUntilUnlock(now)})
		return nil
	}

	property.MarkAvailable()
	property.UpdatedAt = now.UTC()
	if err := uc.propertyRepo.Save(ctx, property); err != nil {
		logger.Error("Repository failed to save property after reject", err, nil)
		return err
	}
	return nil
}

func (uc *UpdateRequestStatusUseCase) notifySeeker(ctx context.Context, logger port.LoggerPort, request *domain.PropertyRequest, property *domain.Property) {
	seeker, err := uc.userRepo.FindByID(ctx, request.SeekerID)
	if err != nil || seeker == nil {
		logger.Warn("Skipping seeker notification: seeker unavailable", nil)
		return
	}
	notification := domain.Notification{
		RecipientEmail: seeker.Email,
		RecipientName:  seeker.FullName,
		Kind:           domain.NotifyRequestStatus,
		Data: map[string]string{
			"property_title": property.Title,
			"status":         string(request.Status),
		},
	}
	if err := uc.notifier.Notify(ctx, notification); err != nil {
		logger.Warn("Failed to enqueue seeker notification", port.Fields{"error": err.Error()})
	}
}
