package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, draft domain.RegisterDraft) (*domain.User, string, error)
}

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error)
}

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, token string) (*domain.Claims, error)
}

// ReviewUserVerificationUseCasePort - админ верифицирует или отклоняет аккаунт.
type ReviewUserVerificationUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, approve bool) error
}

// UpgradeSubscriptionUseCasePort - одностороннее переключение free -> premium.
type UpgradeSubscriptionUseCasePort interface {
	Execute(ctx context.Context, landlordID uuid.UUID) error
}
