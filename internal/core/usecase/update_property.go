package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type UpdatePropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	clock        port.ClockPort
}

func NewUpdatePropertyUseCase(propertyRepo port.PropertyRepositoryPort, clock port.ClockPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{propertyRepo: propertyRepo, clock: clock}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, actorID, propertyID uuid.UUID, draft domain.PropertyDraft) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": propertyID.String(),
	})

	ucLogger.Info("Use case started: updating property", nil)

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if property.LandlordID != actorID {
		ucLogger.Warn("Property update rejected: actor is not the owner", nil)
		return nil, domain.ErrUnauthorized
	}

	property.Title = draft.Title
	property.Description = draft.Description
	property.Address = draft.Address
	property.City = draft.City
	property.District = draft.District
	property.Province = draft.Province
	property.Latitude = draft.Latitude
	property.Longitude = draft.Longitude
	property.Price = draft.Price
	property.Bedrooms = draft.Bedrooms
	property.Bathrooms = draft.Bathrooms
	property.Area = draft.Area
	property.Type = draft.Type
	property.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.propertyRepo.Save(ctx, property); err != nil {
		ucLogger.Error("Repository failed to save property", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: property updated", nil)
	return property, nil
}
