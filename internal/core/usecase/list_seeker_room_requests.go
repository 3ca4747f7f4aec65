package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

type ListSeekerRoomRequestsUseCase struct {
	roomRequestRepo port.RoomRequestRepositoryPort
}

func NewListSeekerRoomRequestsUseCase(roomRequestRepo port.RoomRequestRepositoryPort) *ListSeekerRoomRequestsUseCase {
	return &ListSeekerRoomRequestsUseCase{roomRequestRepo: roomRequestRepo}
}

func (uc *ListSeekerRoomRequestsUseCase) Execute(ctx context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	requests, err := uc.roomRequestRepo.FindBySeeker(ctx, seekerID)
	if err != nil {
		logger.Error("Repository failed while listing room requests", err, port.Fields{"seeker_id": seekerID.String()})
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return requests, nil
}
