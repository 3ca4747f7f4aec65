package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// freeTierPropertyLimit - сколько объектов может держать landlord без premium.
const freeTierPropertyLimit = 2

type CreatePropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	userRepo     port.UserRepositoryPort
	clock        port.ClockPort
}

func NewCreatePropertyUseCase(propertyRepo port.PropertyRepositoryPort, userRepo port.UserRepositoryPort, clock port.ClockPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		clock:        clock,
	}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, landlordID uuid.UUID, draft domain.PropertyDraft) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateProperty",
		"landlord_id": landlordID.String(),
		"city":        draft.City,
	})

	ucLogger.Info("Use case started: creating property", nil)

	landlord, err := uc.userRepo.FindByID(ctx, landlordID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching landlord", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if landlord == nil {
		return nil, domain.ErrUserNotFound
	}
	if landlord.Role != domain.RoleLandlord {
		ucLogger.Warn("Property creation rejected: actor is not a landlord", nil)
		return nil, domain.ErrUnauthorized
	}
	if !landlord.IsVerified() {
		ucLogger.Warn("Property creation rejected: landlord is not verified", nil)
		return nil, domain.ErrPolicyViolation
	}

	// Квота free-тарифа считается по всем объектам landlord-а, независимо
	// от их статуса.
	if landlord.SubscriptionStatus != domain.SubscriptionPremium {
		count, err := uc.propertyRepo.CountByLandlord(ctx, landlordID)
		if err != nil {
			ucLogger.Error("Repository failed while counting properties", err, nil)
			return nil, fmt.Errorf("internal server error: %w", err)
		}
		if count >= freeTierPropertyLimit {
			ucLogger.Warn("Property creation rejected: free tier limit reached", port.Fields{"count": count})
			return nil, domain.ErrPolicyViolation
		}
	}

	now := uc.clock.Now().UTC()
	property := &domain.Property{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		Title:       draft.Title,
		Description: draft.Description,
		Address:     draft.Address,
		City:        draft.City,
		District:    draft.District,
		Province:    draft.Province,
		Latitude:    draft.Latitude,
		Longitude:   draft.Longitude,
		Price:       draft.Price,
		Bedrooms:    draft.Bedrooms,
		Bathrooms:   draft.Bathrooms,
		Area:        draft.Area,
		Type:        draft.Type,
		Status:      domain.StatusAvailable,
		Verified:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		ucLogger.Error("Repository failed to create property", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: property created, awaiting verification", port.Fields{"property_id": property.ID.String()})
	return property, nil
}
