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

// UpdateRoomRequestUseCase правит критерии или активность запроса.
// Пока запрос активен, каждое изменение перезапускает рассылку по
// подходящим объектам.
type UpdateRoomRequestUseCase struct {
	roomRequestRepo port.RoomRequestRepositoryPort
	notifyMatches   usecases_port.NotifyRoomRequestMatchesUseCasePort
	clock           port.ClockPort
}

func NewUpdateRoomRequestUseCase(
	roomRequestRepo port.RoomRequestRepositoryPort,
	notifyMatches usecases_port.NotifyRoomRequestMatchesUseCasePort,
	clock port.ClockPort,
) *UpdateRoomRequestUseCase {
	return &UpdateRoomRequestUseCase{
		roomRequestRepo: roomRequestRepo,
		notifyMatches:   notifyMatches,
		clock:           clock,
	}
}

func (uc *UpdateRoomRequestUseCase) Execute(ctx context.Context, actorID, requestID uuid.UUID, draft domain.RoomRequestDraft, active *bool) (*domain.RoomRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateRoomRequest",
		"request_id": requestID.String(),
	})

	ucLogger.Info("Use case started: updating room request", nil)

	request, err := uc.roomRequestRepo.FindByID(ctx, requestID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching room request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		return nil, domain.ErrRoomRequestNotFound
	}
	if request.SeekerID != actorID {
		ucLogger.Warn("Update rejected: actor is not the request owner", nil)
		return nil, domain.ErrUnauthorized
	}

	if draft.City == "" {
		return nil, fmt.Errorf("%w: city is required", domain.ErrInvalid)
	}
	if draft.MinPrice != nil && draft.MaxPrice != nil && *draft.MinPrice > *draft.MaxPrice {
		return nil, fmt.Errorf("%w: min price exceeds max price", domain.ErrInvalid)
	}
	if draft.MinBedrooms != nil && draft.MaxBedrooms != nil && *draft.MinBedrooms > *draft.MaxBedrooms {
		return nil, fmt.Errorf("%w: min bedrooms exceeds max bedrooms", domain.ErrInvalid)
	}

	// Реактивация возможна, только если у seeker-а нет другой активной записи.
	if active != nil && *active && !request.Active {
		others, err := uc.roomRequestRepo.FindActiveBySeeker(ctx, actorID)
		if err != nil {
			ucLogger.Error("Repository failed while fetching active room requests", err, nil)
			return nil, fmt.Errorf("internal server error: %w", err)
		}
		for _, other := range others {
			if other.ID != requestID {
				ucLogger.Warn("Reactivation rejected: another active request exists", port.Fields{"existing_id": other.ID.String()})
				return nil, domain.ErrConflict
			}
		}
	}

	request.City = draft.City
	request.District = draft.District
	request.MinPrice = draft.MinPrice
	request.MaxPrice = draft.MaxPrice
	request.MinBedrooms = draft.MinBedrooms
	request.MaxBedrooms = draft.MaxBedrooms
	request.Type = draft.Type
	request.Notes = draft.Notes
	if active != nil {
		request.Active = *active
	}
	request.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.roomRequestRepo.Save(ctx, request); err != nil {
		ucLogger.Error("Repository failed to save room request", err, nil)
		return nil, err
	}

	// Рассылка не должна ронять обновление; по деактивированному запросу
	// fanout не запускается.
	if request.Active {
		if err := uc.notifyMatches.Execute(ctx, request); err != nil {
			ucLogger.Warn("Failed to fan out matching listings", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: room request updated", nil)
	return request, nil
}
