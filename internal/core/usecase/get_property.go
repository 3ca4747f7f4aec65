package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type GetPropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
}

func NewGetPropertyUseCase(propertyRepo port.PropertyRepositoryPort) *GetPropertyUseCase {
	return &GetPropertyUseCase{propertyRepo: propertyRepo}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		logger.Error("Repository failed while fetching property", err, port.Fields{"property_id": propertyID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}
