package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

// UserRepositoryPort - контракт хранилища пользователей.
// Find* возвращают (nil, nil), если запись не найдена; решение о ErrNotFound
// принимает use case.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
