package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type ListLandlordPropertiesUseCase struct {
	propertyRepo port.PropertyRepositoryPort
}

func NewListLandlordPropertiesUseCase(propertyRepo port.PropertyRepositoryPort) *ListLandlordPropertiesUseCase {
	return &ListLandlordPropertiesUseCase{propertyRepo: propertyRepo}
}

func (uc *ListLandlordPropertiesUseCase) Execute(ctx context.Context, landlordID uuid.UUID) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	properties, err := uc.propertyRepo.FindByLandlord(ctx, landlordID)
	if err != nil {
		logger.Error("Repository failed while listing landlord properties", err, port.Fields{"landlord_id": landlordID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return properties, nil
}
