package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// PurgeRejectedRequestsUseCase - массовая очистка отклоненных заявок seeker-а.
type PurgeRejectedRequestsUseCase struct {
	requestRepo port.PropertyRequestRepositoryPort
}

func NewPurgeRejectedRequestsUseCase(requestRepo port.PropertyRequestRepositoryPort) *PurgeRejectedRequestsUseCase {
	return &PurgeRejectedRequestsUseCase{requestRepo: requestRepo}
}

func (uc *PurgeRejectedRequestsUseCase) Execute(ctx context.Context, seekerID uuid.UUID) (int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "PurgeRejectedRequests",
		"seeker_id": seekerID.String(),
	})

	removed, err := uc.requestRepo.DeleteRejectedBySeeker(ctx, seekerID)
	if err != nil {
		ucLogger.Error("Repository failed to purge rejected requests", err, nil)
		return 0, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Rejected requests purged", port.Fields{"removed": removed})
	return removed, nil
}
