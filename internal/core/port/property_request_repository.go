package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type PropertyRequestRepositoryPort interface {
	Create(ctx context.Context, r *domain.PropertyRequest) error
	Save(ctx context.Context, r *domain.PropertyRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteRejectedBySeeker удаляет все REJECTED-заявки seeker-а,
	// возвращает количество удаленных.
	DeleteRejectedBySeeker(ctx context.Context, seekerID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PropertyRequest, error)
	FindBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.PropertyRequest, error)
	// FindByLandlord - заявки на все объекты данного landlord-а.
	FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*domain.PropertyRequest, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*domain.PropertyRequest, error)
	// FindBySeekerAndProperty - история заявок пары, новые первыми.
	FindBySeekerAndProperty(ctx context.Context, seekerID, propertyID uuid.UUID) ([]*domain.PropertyRequest, error)
}
