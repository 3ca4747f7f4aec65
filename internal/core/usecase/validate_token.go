package usecase

import (
	"context"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	claims, err := uc.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		logger.Warn("Token validation failed", port.Fields{"error": err.Error()})
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
