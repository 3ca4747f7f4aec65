package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type SubscriptionRepositoryPort interface {
	Create(ctx context.Context, s *domain.AvailabilitySubscription) error
	Save(ctx context.Context, s *domain.AvailabilitySubscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySubscription, error)
	FindActiveBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.AvailabilitySubscription, error)
	FindActiveByCity(ctx context.Context, city string) ([]*domain.AvailabilitySubscription, error)
}
