package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

// CreateRoomRequestUseCase - стоячий запрос seeker-а. Не больше одного
// активного на seeker-а; гонку закрывает частичный уникальный индекс.
// Сразу после создания запускается рассылка по подходящим объектам.
type CreateRoomRequestUseCase struct {
	roomRequestRepo port.RoomRequestRepositoryPort
	userRepo        port.UserRepositoryPort
	notifyMatches   usecases_port.NotifyRoomRequestMatchesUseCasePort
	clock           port.ClockPort
}

func NewCreateRoomRequestUseCase(
	roomRequestRepo port.RoomRequestRepositoryPort,
	userRepo port.UserRepositoryPort,
	notifyMatches usecases_port.NotifyRoomRequestMatchesUseCasePort,
	clock port.ClockPort,
) *CreateRoomRequestUseCase {
	return &CreateRoomRequestUseCase{
		roomRequestRepo: roomRequestRepo,
		userRepo:        userRepo,
		notifyMatches:   notifyMatches,
		clock:           clock,
	}
}

func (uc *CreateRoomRequestUseCase) Execute(ctx context.Context, seekerID uuid.UUID, draft domain.RoomRequestDraft) (*domain.RoomRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "CreateRoomRequest",
		"seeker_id": seekerID.String(),
		"city":      draft.City,
	})

	ucLogger.Info("Use case started: creating room request", nil)

	if draft.City == "" {
		return nil, fmt.Errorf("%w: city is required", domain.ErrInvalid)
	}
	if draft.MinPrice != nil && draft.MaxPrice != nil && *draft.MinPrice > *draft.MaxPrice {
		return nil, fmt.Errorf("%w: min price exceeds max price", domain.ErrInvalid)
	}
	if draft.MinBedrooms != nil && draft.MaxBedrooms != nil && *draft.MinBedrooms > *draft.MaxBedrooms {
		return nil, fmt.Errorf("%w: min bedrooms exceeds max bedrooms", domain.ErrInvalid)
	}

	seeker, err := uc.userRepo.FindByID(ctx, seekerID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching seeker", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if seeker == nil {
		return nil, domain.ErrUserNotFound
	}

	active, err := uc.roomRequestRepo.FindActiveBySeeker(ctx, seekerID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching active room requests", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if len(active) > 0 {
		ucLogger.Warn("Room request rejected: active request already exists", port.Fields{"existing_id": active[0].ID.String()})
		return nil, domain.ErrConflict
	}

	now := uc.clock.Now().UTC()
	request := &domain.RoomRequest{
		ID:          uuid.New(),
		SeekerID:    seekerID,
		City:        draft.City,
		District:    draft.District,
		MinPrice:    draft.MinPrice,
		MaxPrice:    draft.MaxPrice,
		MinBedrooms: draft.MinBedrooms,
		MaxBedrooms: draft.MaxBedrooms,
		Type:        draft.Type,
		Notes:       draft.Notes,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.roomRequestRepo.Create(ctx, request); err != nil {
		ucLogger.Error("Repository failed to create room request", err, nil)
		return nil, err
	}

	// Рассылка не должна ронять создание запроса.
	if err := uc.notifyMatches.Execute(ctx, request); err != nil {
		ucLogger.Warn("Failed to fan out matching listings", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished: room request created", port.Fields{"request_id": request.ID.String()})
	return request, nil
}
