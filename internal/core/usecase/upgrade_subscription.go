package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// UpgradeSubscriptionUseCase - перевод landlord-а на premium после оплаты.
// Идемпотентен: повторный вызов для premium-аккаунта не является ошибкой.
type UpgradeSubscriptionUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewUpgradeSubscriptionUseCase(userRepo port.UserRepositoryPort) *UpgradeSubscriptionUseCase {
	return &UpgradeSubscriptionUseCase{userRepo: userRepo}
}

func (uc *UpgradeSubscriptionUseCase) Execute(ctx context.Context, landlordID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpgradeSubscription",
		"user_id":  landlordID.String(),
	})

	ucLogger.Info("Use case started: upgrading subscription", nil)

	user, err := uc.userRepo.FindByID(ctx, landlordID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching user", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role != domain.RoleLandlord {
		ucLogger.Warn("Subscription upgrade rejected: user is not a landlord", nil)
		return domain.ErrPolicyViolation
	}

	if user.SubscriptionStatus == domain.SubscriptionPremium {
		ucLogger.Info("User already premium, nothing to do", nil)
		return nil
	}

	user.SubscriptionStatus = domain.SubscriptionPremium
	if err := uc.userRepo.Save(ctx, user); err != nil {
		ucLogger.Error("Repository failed to save user", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: subscription upgraded to premium", nil)
	return nil
}
