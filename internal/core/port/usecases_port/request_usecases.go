package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type CreatePropertyRequestUseCasePort interface {
	Execute(ctx context.Context, seekerID, propertyID uuid.UUID, message string) (*domain.PropertyRequest, error)
}

// UpdateRequestStatusUseCasePort - accept/reject заявки landlord-ом,
// с побочными эффектами на статус объекта.
type UpdateRequestStatusUseCasePort interface {
	Execute(ctx context.Context, actorID, requestID uuid.UUID, status domain.RequestStatus) (*domain.PropertyRequest, error)
}

// ConfirmBookingPaymentUseCasePort - внешнее подтверждение оплаты заявки.
// Идемпотентен: повторное подтверждение не является ошибкой.
type ConfirmBookingPaymentUseCasePort interface {
	Execute(ctx context.Context, requestID uuid.UUID) error
}

type DeletePropertyRequestUseCasePort interface {
	Execute(ctx context.Context, actorID, requestID uuid.UUID) error
}

type PurgeRejectedRequestsUseCasePort interface {
	Execute(ctx context.Context, seekerID uuid.UUID) (int64, error)
}

type ListSeekerRequestsUseCasePort interface {
	Execute(ctx context.Context, seekerID uuid.UUID) ([]*domain.PropertyRequest, error)
}

type ListLandlordRequestsUseCasePort interface {
	Execute(ctx context.Context, landlordID uuid.UUID) ([]*domain.PropertyRequest, error)
}

// GetRequestForPropertyUseCasePort - текущая (самая свежая) заявка seeker-а
// на объект; (nil, nil), если заявок не было.
type GetRequestForPropertyUseCasePort interface {
	Execute(ctx context.Context, seekerID, propertyID uuid.UUID) (*domain.PropertyRequest, error)
}
