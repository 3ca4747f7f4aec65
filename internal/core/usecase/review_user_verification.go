package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// ReviewUserVerificationUseCase - решение админа по верификации пользователя.
// Результат сообщается пользователю письмом через fanout уведомлений.
type ReviewUserVerificationUseCase struct {
	userRepo port.UserRepositoryPort
	notifier port.NotifierPort
}

func NewReviewUserVerificationUseCase(userRepo port.UserRepositoryPort, notifier port.NotifierPort) *ReviewUserVerificationUseCase {
	return &ReviewUserVerificationUseCase{userRepo: userRepo, notifier: notifier}
}

func (uc *ReviewUserVerificationUseCase) Execute(ctx context.Context, userID uuid.UUID, approve bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ReviewUserVerification",
		"user_id":  userID.String(),
		"approve":  approve,
	})

	ucLogger.Info("Use case started: reviewing user verification", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed while fetching user", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if approve {
		user.VerificationStatus = domain.VerificationVerified
	} else {
		user.VerificationStatus = domain.VerificationRejected
	}

	if err := uc.userRepo.Save(ctx, user); err != nil {
		ucLogger.Error("Repository failed to save user", err, nil)
		return err
	}

	status := "approved"
	if !approve {
		status = "rejected"
	}
	notification := domain.Notification{
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
		Kind:           domain.NotifyAccountVerification,
		Data:           map[string]string{"status": status},
	}
	// Уведомление best-effort: решение уже сохранено.
	if err := uc.notifier.Notify(ctx, notification); err != nil {
		ucLogger.Warn("Failed to enqueue verification notification", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished: user verification reviewed", nil)
	return nil
}
