package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// DeletePropertyRequestUseCase - seeker убирает свою отклоненную заявку.
// Живые и оплаченные заявки удалять нельзя.
type DeletePropertyRequestUseCase struct {
	requestRepo port.PropertyRequestRepositoryPort
}

func NewDeletePropertyRequestUseCase(requestRepo port.PropertyRequestRepositoryPort) *DeletePropertyRequestUseCase {
	return &DeletePropertyRequestUseCase{requestRepo: requestRepo}
}

func (uc *DeletePropertyRequestUseCase) Execute(ctx context.Context, actorID, requestID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeletePropertyRequest",
		"request_id": requestID.String(),
	})

	ucLogger.Info("Use case started: deleting property request", nil)

	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching request", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		return domain.ErrRequestNotFound
	}
	if request.SeekerID != actorID {
		ucLogger.Warn("Deletion rejected: actor is not the request owner", nil)
		return domain.ErrUnauthorized
	}
	if request.Status != domain.RequestRejected {
		ucLogger.Warn("Deletion rejected: only rejected requests can be removed", port.Fields{"status": string(request.Status)})
		return domain.ErrConflict
	}

	if err := uc.requestRepo.Delete(ctx, requestID); err != nil {
		ucLogger.Error("Repository failed to delete request", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: property request deleted", nil)
	return nil
}
