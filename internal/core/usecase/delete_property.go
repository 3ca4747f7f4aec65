package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// DeletePropertyUseCase - удаление объекта владельцем (или админом) вместе
// со всеми заявками на него.
type DeletePropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	requestRepo  port.PropertyRequestRepositoryPort
}

func NewDeletePropertyUseCase(propertyRepo port.PropertyRepositoryPort, requestRepo port.PropertyRequestRepositoryPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{propertyRepo: propertyRepo, requestRepo: requestRepo}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, actorID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": propertyID.String(),
	})

	ucLogger.Info("Use case started: deleting property", nil)

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return domain.ErrPropertyNotFound
	}
	if property.LandlordID != actorID {
		ucLogger.Warn("Property deletion rejected: actor is not the owner", nil)
		return domain.ErrUnauthorized
	}

	requests, err := uc.requestRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property requests", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	for _, req := range requests {
		if err := uc.requestRepo.Delete(ctx, req.ID); err != nil {
			ucLogger.Error("Repository failed to delete property request", err, port.Fields{"request_id": req.ID.String()})
			return err
		}
	}

	if err := uc.propertyRepo.Delete(ctx, propertyID); err != nil {
		ucLogger.Error("Repository failed to delete property", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: property deleted", port.Fields{"requests_removed": len(requests)})
	return nil
}
