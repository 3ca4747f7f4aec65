package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// CreatePropertyRequestUseCase - заявка seeker-а на объект. На пару
// seeker+property допускается не больше одной активной заявки; гонку
// двух параллельных созданий добивает частичный уникальный индекс в БД.
type CreatePropertyRequestUseCase struct {
	requestRepo  port.PropertyRequestRepositoryPort
	propertyRepo port.PropertyRepositoryPort
	userRepo     port.UserRepositoryPort
	notifier     port.NotifierPort
	clock        port.ClockPort
}

func NewCreatePropertyRequestUseCase(
	requestRepo port.PropertyRequestRepositoryPort,
	propertyRepo port.PropertyRepositoryPort,
	userRepo port.UserRepositoryPort,
	notifier port.NotifierPort,
	clock port.ClockPort,
) *CreatePropertyRequestUseCase {
	return &CreatePropertyRequestUseCase{
		requestRepo:  requestRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		clock:        clock,
	}
}

func (uc *CreatePropertyRequestUseCase) Execute(ctx context.Context, seekerID, propertyID uuid.UUID, message string) (*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreatePropertyRequest",
		"seeker_id":   seekerID.String(),
		"property_id": propertyID.String(),
	})

	ucLogger.Info("Use case started: creating property request", nil)

	seeker, err := uc.userRepo.FindByID(ctx, seekerID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching seeker", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if seeker == nil {
		return nil, domain.ErrUserNotFound
	}
	if !seeker.IsVerified() {
		ucLogger.Warn("Request rejected: seeker is not verified", nil)
		return nil, domain.ErrPolicyViolation
	}

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if property.LandlordID == seekerID {
		ucLogger.Warn("Request rejected: seeker owns the property", nil)
		return nil, domain.ErrPolicyViolation
	}
	if !property.VisibleToSeekers() {
		ucLogger.Warn("Request rejected: property is not open for requests", nil)
		return nil, domain.ErrPolicyViolation
	}

	history, err := uc.requestRepo.FindBySeekerAndProperty(ctx, seekerID, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching request history", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	for _, prev := range history {
		if prev.IsActive() {
			ucLogger.Warn("Request rejected: active request already exists", port.Fields{"existing_id": prev.ID.String()})
			return nil, domain.ErrConflict
		}
	}

	now := uc.clock.Now().UTC()
	request := &domain.PropertyRequest{
		ID:         uuid.New(),
		SeekerID:   seekerID,
		PropertyID: propertyID,
		Message:    message,
		Status:     domain.RequestPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		ucLogger.Error("Repository failed to create request", err, nil)
		return nil, err
	}

	uc.notifyLandlord(ctx, ucLogger, property, seeker)

	ucLogger.Info("Use case finished: property request created", port.Fields{"request_id": request.ID.String()})
	return request, nil
}

func (uc *CreatePropertyRequestUseCase) notifyLandlord(ctx context.Context, logger port.LoggerPort, property *domain.Property, seeker *domain.User) {
	landlord, err := uc.userRepo.FindByID(ctx, property.LandlordID)
	if err != nil || landlord == nil {
		logger.Warn("Skipping landlord notification: landlord unavailable", nil)
		return
	}
	notification := domain.Notification{
		RecipientEmail: landlord.Email,
		RecipientName:  landlord.FullName,
		Kind:           domain.NotifyRequestReceived,
		Data: map[string]string{
			"property_title": property.Title,
			"seeker_name":    seeker.FullName,
		},
	}
	if err := uc.notifier.Notify(ctx, notification); err != nil {
		logger.Warn("Failed to enqueue landlord notification", port.Fields{"error": err.Error()})
	}
}
