package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type DeleteRoomRequestUseCase struct {
	roomRequestRepo port.RoomRequestRepositoryPort
}

func NewDeleteRoomRequestUseCase(roomRequestRepo port.RoomRequestRepositoryPort) *DeleteRoomRequestUseCase {
	return &DeleteRoomRequestUseCase{roomRequestRepo: roomRequestRepo}
}

func (uc *DeleteRoomRequestUseCase) Execute(ctx context.Context, actorID, requestID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteRoomRequest",
		"request_id": requestID.String(),
	})

	request, err := uc.roomRequestRepo.FindByID(ctx, requestID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching room request", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		return domain.ErrRoomRequestNotFound
	}
	if request.SeekerID != actorID {
		ucLogger.Warn("Deletion rejected: actor is not the request owner", nil)
		return domain.ErrUnauthorized
	}

	if err := uc.roomRequestRepo.Delete(ctx, requestID); err != nil {
		ucLogger.Error("Repository failed to delete room request", err, nil)
		return err
	}

	ucLogger.Info("Room request deleted", nil)
	return nil
}
