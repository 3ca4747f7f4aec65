package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// NotifyPropertyMatchesUseCase - fanout по объекту, ставшему verified +
// available: письма seeker-ам со стоячими запросами, под которые объект
// подходит, и подписчикам на город. Ошибка доставки одному получателю не
// мешает остальным.
type NotifyPropertyMatchesUseCase struct {
	roomRequestRepo  port.RoomRequestRepositoryPort
	subscriptionRepo port.SubscriptionRepositoryPort
	userRepo         port.UserRepositoryPort
	notifier         port.NotifierPort
}

func NewNotifyPropertyMatchesUseCase(
	roomRequestRepo port.RoomRequestRepositoryPort,
	subscriptionRepo port.SubscriptionRepositoryPort,
	userRepo port.UserRepositoryPort,
	notifier port.NotifierPort,
) *NotifyPropertyMatchesUseCase {
	return &NotifyPropertyMatchesUseCase{
		roomRequestRepo:  roomRequestRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (uc *NotifyPropertyMatchesUseCase) Execute(ctx context.Context, property *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "NotifyPropertyMatches",
		"property_id": property.ID.String(),
		"city":        property.City,
	})

	ucLogger.Info("Use case started: fanning out property match notifications", nil)

	if !property.VisibleToSeekers() {
		ucLogger.Info("Property is not visible to seekers, skipping fanout", nil)
		return nil
	}

	sent, failed := 0, 0

	// У seeker-а не бывает двух активных стоячих запросов, дедупликация
	// внутри этого скана не нужна.
	roomRequests, err := uc.roomRequestRepo.FindActive(ctx)
	if err != nil {
		ucLogger.Error("Repository failed while fetching active room requests", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	for _, req := range roomRequests {
		if !req.Matches(property) {
			continue
		}
		if uc.notifySeeker(ctx, ucLogger, req.SeekerID, property) {
			sent++
		} else {
			failed++
		}
	}

	// Подписки рассылаются независимо от стоячих запросов: seeker с обоими
	// каналами получит два письма. Схлопываются только его собственные
	// пересекающиеся подписки.
	subscribed := make(map[uuid.UUID]struct{})
	subscriptions, err := uc.subscriptionRepo.FindActiveByCity(ctx, property.City)
	if err != nil {
		ucLogger.Error("Repository failed while fetching subscriptions", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	for _, sub := range subscriptions {
		if !sub.MatchesProperty(property) {
			continue
		}
		if _, done := subscribed[sub.SeekerID]; done {
			continue
		}
		subscribed[sub.SeekerID] = struct{}{}
		if uc.notifySeeker(ctx, ucLogger, sub.SeekerID, property) {
			sent++
		} else {
			failed++
		}
	}

	ucLogger.Info("Use case finished: fanout completed", port.Fields{
		"sent":   sent,
		"failed": failed,
	})
	return nil
}

// notifySeeker шлет одно письмо; любая ошибка логируется и глотается,
// чтобы не оборвать рассылку остальным.
func (uc *NotifyPropertyMatchesUseCase) notifySeeker(ctx context.Context, logger port.LoggerPort, seekerID uuid.UUID, property *domain.Property) bool {
	seeker, err := uc.userRepo.FindByID(ctx, seekerID)
	if err != nil || seeker == nil {
		logger.Warn("Skipping match notification: seeker unavailable", port.Fields{"seeker_id": seekerID.String()})
		return false
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
		logger.Warn("Failed to enqueue match notification", port.Fields{
			"seeker_id": seekerID.String(),
			"error":     err.Error(),
		})
		return false
	}
	return true
}
