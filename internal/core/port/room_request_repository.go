package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type RoomRequestRepositoryPort interface {
	Create(ctx context.Context, r *domain.RoomRequest) error
	Save(ctx context.Context, r *domain.RoomRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.RoomRequest, error)
	FindBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error)
	FindActiveBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error)
	// FindActive - все активные стоячие запросы (для fanout по новому объекту).
	FindActive(ctx context.Context) ([]*domain.RoomRequest, error)
}
