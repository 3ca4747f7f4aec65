package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

func TestRegisterUser_CreatesPendingFreeAccount(t *testing.T) {
	users := newMemUserRepo()
	tokens := &stubTokenService{token: "jwt-token"}
	uc := NewRegisterUserUseCase(users, tokens, newFakeClock(baseTime), time.Hour)

	draft := domain.RegisterDraft{
		FullName:    "Sita Sharma",
		Email:       "sita@example.com",
		Password:    "s3cret-pass",
		PhoneNumber: "+9779800000000",
		Role:        domain.RoleSeeker,
	}

	user, token, err := uc.Execute(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, domain.VerificationPending, user.VerificationStatus)
	assert.Equal(t, domain.SubscriptionFree, user.SubscriptionStatus)
	assert.True(t, user.CheckPassword("s3cret-pass"))

	_, _, err = uc.Execute(context.Background(), draft)
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestLoginUser_WrongCredentials(t *testing.T) {
	users := newMemUserRepo()
	tokens := &stubTokenService{token: "jwt-token"}
	register := NewRegisterUserUseCase(users, tokens, newFakeClock(baseTime), time.Hour)
	login := NewLoginUserUseCase(users, tokens, time.Hour)

	_, _, err := register.Execute(context.Background(), domain.RegisterDraft{
		Email:    "ram@example.com",
		Password: "correct-pass",
		Role:     domain.RoleLandlord,
	})
	require.NoError(t, err)

	_, _, err = login.Execute(context.Background(), "ram@example.com", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = login.Execute(context.Background(), "nobody@example.com", "correct-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	user, token, err := login.Execute(context.Background(), "ram@example.com", "correct-pass")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, domain.RoleLandlord, user.Role)
}

func TestReviewUserVerification_NotifiesDecision(t *testing.T) {
	users := newMemUserRepo()
	notifier := newRecordingNotifier()
	uc := NewReviewUserVerificationUseCase(users, notifier)

	user := seedUser(users, domain.RoleSeeker, false)
	require.NoError(t, uc.Execute(context.Background(), user.ID, true))

	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.Equal(t, domain.VerificationVerified, stored.VerificationStatus)

	notifications := notifier.sentTo(user.Email)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyAccountVerification, notifications[0].Kind)
	assert.Equal(t, "approved", notifications[0].Data["status"])
}

func TestUpgradeSubscription_LandlordOnlyAndIdempotent(t *testing.T) {
	users := newMemUserRepo()
	uc := NewUpgradeSubscriptionUseCase(users)

	seeker := seedUser(users, domain.RoleSeeker, true)
	assert.ErrorIs(t, uc.Execute(context.Background(), seeker.ID), domain.ErrPolicyViolation)

	landlord := seedUser(users, domain.RoleLandlord, true)
	require.NoError(t, uc.Execute(context.Background(), landlord.ID))
	require.NoError(t, uc.Execute(context.Background(), landlord.ID), "second upgrade must be a no-op")

	stored, _ := users.FindByID(context.Background(), landlord.ID)
	assert.Equal(t, domain.SubscriptionPremium, stored.SubscriptionStatus)
}
