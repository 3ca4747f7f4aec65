package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type ListSeekerSubscriptionsUseCase struct {
	subscriptionRepo port.SubscriptionRepositoryPort
}

func NewListSeekerSubscriptionsUseCase(subscriptionRepo port.SubscriptionRepositoryPort) *ListSeekerSubscriptionsUseCase {
	return &ListSeekerSubscriptionsUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *ListSeekerSubscriptionsUseCase) Execute(ctx context.Context, seekerID uuid.UUID) ([]*domain.AvailabilitySubscription, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	subscriptions, err := uc.subscriptionRepo.FindActiveBySeeker(ctx, seekerID)
	if err != nil {
		logger.Error("Repository failed while listing subscriptions", err, port.Fields{"seeker_id": seekerID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return subscriptions, nil
}
