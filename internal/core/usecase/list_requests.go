package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type ListSeekerRequestsUseCase struct {
	requestRepo port.PropertyRequestRepositoryPort
}

func NewListSeekerRequestsUseCase(requestRepo port.PropertyRequestRepositoryPort) *ListSeekerRequestsUseCase {
	return &ListSeekerRequestsUseCase{requestRepo: requestRepo}
}

func (uc *ListSeekerRequestsUseCase) Execute(ctx context.Context, seekerID uuid.UUID) ([]*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	requests, err := uc.requestRepo.FindBySeeker(ctx, seekerID)
	if err != nil {
		logger.Error("Repository failed while listing seeker requests", err, port.Fields{"seeker_id": seekerID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return requests, nil
}

type ListLandlordRequestsUseCase struct {
	requestRepo port.PropertyRequestRepositoryPort
}

func NewListLandlordRequestsUseCase(requestRepo port.PropertyRequestRepositoryPort) *ListLandlordRequestsUseCase {
	return &ListLandlordRequestsUseCase{requestRepo: requestRepo}
}

func (uc *ListLandlordRequestsUseCase) Execute(ctx context.Context, landlordID uuid.UUID) ([]*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	requests, err := uc.requestRepo.FindByLandlord(ctx, landlordID)
	if err != nil {
		logger.Error("Repository failed while listing landlord requests", err, port.Fields{"landlord_id": landlordID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return requests, nil
}

// GetRequestForPropertyUseCase - самая свежая заявка seeker-а на объект,
// (nil, nil) если заявок не было.
type GetRequestForPropertyUseCase struct {
	requestRepo port.PropertyRequestRepositoryPort
}

func NewGetRequestForPropertyUseCase(requestRepo port.PropertyRequestRepositoryPort) *GetRequestForPropertyUseCase {
	return &GetRequestForPropertyUseCase{requestRepo: requestRepo}
}

func (uc *GetRequestForPropertyUseCase) Execute(ctx context.Context, seekerID, propertyID uuid.UUID) (*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	history, err := uc.requestRepo.FindBySeekerAndProperty(ctx, seekerID, propertyID)
	if err != nil {
		logger.Error("Repository failed while fetching request history", err, port.Fields{
			"seeker_id":   seekerID.String(),
			"property_id": propertyID.String(),
		})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if len(history) == 0 {
		return nil, nil
	}
	return history[0], nil
}
