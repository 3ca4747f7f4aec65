package port

import (
	"context"
	"time"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}
