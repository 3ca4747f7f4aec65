package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// UnsubscribeAvailabilityUseCase деактивирует подписку, запись не удаляется.
type UnsubscribeAvailabilityUseCase struct {
	subscriptionRepo port.SubscriptionRepositoryPort
}

func NewUnsubscribeAvailabilityUseCase(subscriptionRepo port.SubscriptionRepositoryPort) *UnsubscribeAvailabilityUseCase {
	return &UnsubscribeAvailabilityUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *UnsubscribeAvailabilityUseCase) Execute(ctx context.Context, actorID, subscriptionID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":        "UnsubscribeAvailability",
		"subscription_id": subscriptionID.String(),
	})

	subscription, err := uc.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching subscription", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if subscription == nil {
		return domain.ErrSubscriptionNotFound
	}
	if subscription.SeekerID != actorID {
		ucLogger.Warn("Unsubscribe rejected: actor is not the subscription owner", nil)
		return domain.ErrUnauthorized
	}

	if !subscription.Active {
		return nil
	}

	subscription.Active = false
	if err := uc.subscriptionRepo.Save(ctx, subscription); err != nil {
		ucLogger.Error("Repository failed to save subscription", err, nil)
		return err
	}

	ucLogger.Info("Subscription deactivated", nil)
	return nil
}
