package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

// ReviewPropertyVerificationUseCase - решение админа по объекту. Одобрение
// делает объект видимым в поиске и запускает рассылку о совпадениях.
type ReviewPropertyVerificationUseCase struct {
	propertyRepo  port.PropertyRepositoryPort
	userRepo      port.UserRepositoryPort
	notifier      port.NotifierPort
	notifyMatches usecases_port.NotifyPropertyMatchesUseCasePort
}

func NewReviewPropertyVerificationUseCase(
	propertyRepo port.PropertyRepositoryPort,
	userRepo port.UserRepositoryPort,
	notifier port.NotifierPort,
	notifyMatches usecases_port.NotifyPropertyMatchesUseCasePort,
) *ReviewPropertyVerificationUseCase {
	return &ReviewPropertyVerificationUseCase{
		propertyRepo:  propertyRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		notifyMatches: notifyMatches,
	}
}

func (uc *ReviewPropertyVerificationUseCase) Execute(ctx context.Context, propertyID uuid.UUID, approve bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ReviewPropertyVerification",
		"property_id": propertyID.String(),
		"approve":     approve,
	})

	ucLogger.Info("Use case started: reviewing property verification", nil)

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		return domain.ErrPropertyNotFound
	}

	property.Verified = approve
	if err := uc.propertyRepo.Save(ctx, property); err != nil {
		ucLogger.Error("Repository failed to save property", err, nil)
		return err
	}

	// Письмо владельцу о решении, best-effort.
	if landlord, err := uc.userRepo.FindByID(ctx, property.LandlordID); err != nil {
		ucLogger.Warn("Failed to fetch landlord for notification", port.Fields{"error": err.Error()})
	} else if landlord != nil {
		status := "approved"
		if !approve {
			status = "rejected"
		}
		notification := domain.Notification{
			RecipientEmail: landlord.Email,
			RecipientName:  landlord.FullName,
			Kind:           domain.NotifyPropertyVerification,
			Data: map[string]string{
				"property_title": property.Title,
				"status":         status,
			},
		}
		if err := uc.notifier.Notify(ctx, notification); err != nil {
			ucLogger.Warn("Failed to enqueue verification notification", port.Fields{"error": err.Error()})
		}
	}

	if approve && property.VisibleToSeekers() {
		if err := uc.notifyMatches.Execute(ctx, property); err != nil {
			// Рассылка не должна ронять верификацию.
			ucLogger.Warn("Match fanout failed", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: property verification reviewed", nil)
	return nil
}
