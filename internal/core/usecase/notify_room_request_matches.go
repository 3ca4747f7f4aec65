package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// NotifyRoomRequestMatchesUseCase - fanout в обратную сторону: seeker,
// создавший или изменивший стоячий запрос, сразу получает по письму на
// каждый уже опубликованный объект, подходящий под критерии. Ошибка
// доставки одного письма не мешает остальным.
type NotifyRoomRequestMatchesUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	userRepo     port.UserRepositoryPort
	notifier     port.NotifierPort
}

func NewNotifyRoomRequestMatchesUseCase(
	propertyRepo port.PropertyRepositoryPort,
	userRepo port.UserRepositoryPort,
	notifier port.NotifierPort,
) *NotifyRoomRequestMatchesUseCase {
	return &NotifyRoomRequestMatchesUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (uc *NotifyRoomRequestMatchesUseCase) Execute(ctx context.Context, request *domain.RoomRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":        "NotifyRoomRequestMatches",
		"room_request_id": request.ID.String(),
		"city":            request.City,
	})

	ucLogger.Info("Use case started: fanning out listings matching room request", nil)

	if !request.Active {
		ucLogger.Info("Room request is inactive, skipping fanout", nil)
		return nil
	}

	seeker, err := uc.userRepo.FindByID(ctx, request.SeekerID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching seeker", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if seeker == nil {
		return domain.ErrUserNotFound
	}

	properties, err := uc.propertyRepo.FindAvailableVerified(ctx)
	if err != nil {
		ucLogger.Error("Repository failed while fetching visible properties", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}

	sent, failed := 0, 0
	for _, property := range properties {
		if !request.Matches(property) {
			continue
		}
		notification := domain.Notification{
			RecipientEmail: seeker.Email,
			RecipientName:  seeker.FullName,
			Kind:           domain.NotifyRoomMatch,
			Data: map[string]string{
				"property_id":    property.ID.String(),
				"property_title": property.Title,
				"city":           property.City,
				"district":       property.District,
				"price":          strconv.FormatInt(property.Price, 10),
				"type":           string(property.Type),
			},
		}
		if err := uc.notifier.Notify(ctx, notification); err != nil {
			ucLogger.Warn("Failed to enqueue match notification", port.Fields{
				"property_id": property.ID.String(),
				"error":       err.Error(),
			})
			failed++
			continue
		}
		sent++
	}

	ucLogger.Info("Use case finished: fanout completed", port.Fields{
		"sent":   sent,
		"failed": failed,
	})
	return nil
}
