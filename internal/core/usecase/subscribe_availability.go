package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// SubscribeAvailabilityUseCase - подписка seeker-а на появление доступных
// объектов в городе/районе. Дубликат по той же паре город+район не создается.
type SubscribeAvailabilityUseCase struct {
	subscriptionRepo port.SubscriptionRepositoryPort
	clock            port.ClockPort
}

func NewSubscribeAvailabilityUseCase(subscriptionRepo port.SubscriptionRepositoryPort, clock port.ClockPort) *SubscribeAvailabilityUseCase {
	return &SubscribeAvailabilityUseCase{subscriptionRepo: subscriptionRepo, clock: clock}
}

func (uc *SubscribeAvailabilityUseCase) Execute(ctx context.Context, seekerID uuid.UUID, city, district string) (*domain.AvailabilitySubscription, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SubscribeAvailability",
		"seeker_id": seekerID.String(),
		"city":      city,
	})

	ucLogger.Info("Use case started: subscribing to availability", nil)

	if city == "" {
		return nil, fmt.Errorf("%w: city is required", domain.ErrInvalid)
	}

	existing, err := uc.subscriptionRepo.FindActiveBySeeker(ctx, seekerID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching subscriptions", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	for _, sub := range existing {
		if strings.EqualFold(sub.City, city) && strings.EqualFold(sub.District, district) {
			ucLogger.Info("Subscription already exists, returning existing", port.Fields{"subscription_id": sub.ID.String()})
			return sub, nil
		}
	}

	subscription := &domain.AvailabilitySubscription{
		ID:        uuid.New(),
		SeekerID:  seekerID,
		City:      city,
		District:  district,
		Active:    true,
		CreatedAt: uc.clock.Now().UTC(),
	}

	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		ucLogger.Error("Repository failed to create subscription", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: subscription created", port.Fields{"subscription_id": subscription.ID.String()})
	return subscription, nil
}
