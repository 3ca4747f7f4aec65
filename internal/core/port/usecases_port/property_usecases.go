package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, landlordID uuid.UUID, draft domain.PropertyDraft) (*domain.Property, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, actorID, propertyID uuid.UUID, draft domain.PropertyDraft) (*domain.Property, error)
}

type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, actorID, propertyID uuid.UUID) error
}

type UpdatePropertyStatusUseCasePort interface {
	Execute(ctx context.Context, actorID, propertyID uuid.UUID, status domain.PropertyStatus) (*domain.Property, error)
}

type GetPropertyUseCasePort interface {
	Execute(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error)
}

type SearchPropertiesUseCasePort interface {
	Execute(ctx context.Context, filter port.PropertySearchFilter) ([]*domain.Property, error)
}

type ListLandlordPropertiesUseCasePort interface {
	Execute(ctx context.Context, landlordID uuid.UUID) ([]*domain.Property, error)
}

// ReviewPropertyVerificationUseCasePort - админ верифицирует/отклоняет объект;
// верификация запускает fanout уведомлений о совпадениях.
type ReviewPropertyVerificationUseCasePort interface {
	Execute(ctx context.Context, propertyID uuid.UUID, approve bool) error
}

// NotifyPropertyMatchesUseCasePort - рассылка по стоячим запросам и подпискам
// для объекта, ставшего verified+available.
type NotifyPropertyMatchesUseCasePort interface {
	Execute(ctx context.Context, property *domain.Property) error
}
