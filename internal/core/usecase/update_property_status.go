package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// UpdatePropertyStatusUseCase - ручная смена статуса объекта владельцем.
// Возврат из RENTED в AVAILABLE ограничен блокировкой после оплаченной аренды.
type UpdatePropertyStatusUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	requestRepo  port.PropertyRequestRepositoryPort
	clock        port.ClockPort
}

func NewUpdatePropertyStatusUseCase(propertyRepo port.PropertyRepositoryPort, requestRepo port.PropertyRequestRepositoryPort, clock port.ClockPort) *UpdatePropertyStatusUseCase {
	return &UpdatePropertyStatusUseCase{
		propertyRepo: propertyRepo,
		requestRepo:  requestRepo,
		clock:        clock,
	}
}

func (uc *UpdatePropertyStatusUseCase) Execute(ctx context.Context, actorID, propertyID uuid.UUID, status domain.PropertyStatus) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdatePropertyStatus",
		"property_id": propertyID.String(),
		"status":      string(status),
	})

	ucLogger.Info("Use case started: updating property status", nil)

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if property.LandlordID != actorID {
		ucLogger.Warn("Status update rejected: actor is not the owner", nil)
		return nil, domain.ErrUnauthorized
	}

	if property.Status == status {
		ucLogger.Info("Status unchanged, nothing to do", nil)
		return property, nil
	}

	switch status {
	case domain.StatusAvailable:
		if property.Status == domain.StatusRented {
			everPaid, err := uc.propertyEverPaid(ctx, propertyID)
			if err != nil {
				ucLogger.Error("Repository failed while checking paid requests", err, nil)
				return nil, fmt.Errorf("internal server error: %w", err)
			}
			now := uc.clock.Now()
			if !property.CanRevertToAvailable(now, everPaid) {
				days := property.DaysUntilUnlock(now)
				ucLogger.Warn("Status update rejected: rent lock is active", port.Fields{"days_remaining": days})
				return nil, fmt.Errorf("%w: property is rent-locked for %d more day(s)", domain.ErrPolicyViolation, days)
			}
		}
		property.MarkAvailable()
	case domain.StatusRented:
		property.MarkRented(uc.clock.Now(), false)
	case domain.StatusUnavailable:
		// Уход из RENTED снимает rented-метку, иначе старый штамп
		// испортил бы отсчет блокировки при следующей аренде.
		property.Status = domain.StatusUnavailable
		property.RentedAt = nil
	default:
		return nil, fmt.Errorf("%w: unknown property status %q", domain.ErrInvalid, status)
	}

	property.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.propertyRepo.Save(ctx, property); err != nil {
		ucLogger.Error("Repository failed to save property", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: property status updated", nil)
	return property, nil
}

// propertyEverPaid: была ли по объекту хоть одна оплаченная заявка за все
// время. Удаленные заявки в расчет не попадают, это осознанное упрощение.
func (uc *UpdatePropertyStatusUseCase) propertyEverPaid(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	requests, err := uc.requestRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		return false, err
	}
	for _, req := range requests {
		if req.WasPaid() {
			return true, nil
		}
	}
	return false, nil
}
