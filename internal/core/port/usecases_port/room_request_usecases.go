package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type CreateRoomRequestUseCasePort interface {
	Execute(ctx context.Context, seekerID uuid.UUID, draft domain.RoomRequestDraft) (*domain.RoomRequest, error)
}

type UpdateRoomRequestUseCasePort interface {
	Execute(ctx context.Context, actorID, requestID uuid.UUID, draft domain.RoomRequestDraft, active *bool) (*domain.RoomRequest, error)
}

// NotifyRoomRequestMatchesUseCasePort - рассылка по уже опубликованным
// объектам при создании или изменении стоячего запроса.
type NotifyRoomRequestMatchesUseCasePort interface {
	Execute(ctx context.Context, request *domain.RoomRequest) error
}

type DeleteRoomRequestUseCasePort interface {
	Execute(ctx context.Context, actorID, requestID uuid.UUID) error
}

type ListSeekerRoomRequestsUseCasePort interface {
	Execute(ctx context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error)
}

type SubscribeAvailabilityUseCasePort interface {
	Execute(ctx context.Context, seekerID uuid.UUID, city, district string) (*domain.AvailabilitySubscription, error)
}

type UnsubscribeAvailabilityUseCasePort interface {
	Execute(ctx context.Context, actorID, subscriptionID uuid.UUID) error
}

type ListSeekerSubscriptionsUseCasePort interface {
	Execute(ctx context.Context, seekerID uuid.UUID) ([]*domain.AvailabilitySubscription, error)
}
