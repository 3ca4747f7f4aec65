package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type requestLifecycleEnv struct {
	users      *memUserRepo
	properties *memPropertyRepo
	requests   *memRequestRepo
	notifier   *recordingNotifier
	clock      *fakeClock
	uc         *UpdateRequestStatusUseCase
}

func newRequestLifecycleEnv() *requestLifecycleEnv {
	env := &requestLifecycleEnv{
		users:      newMemUserRepo(),
		properties: newMemPropertyRepo(),
		requests:   newMemRequestRepo(),
		notifier:   newRecordingNotifier(),
		clock:      newFakeClock(baseTime),
	}
	env.uc = NewUpdateRequestStatusUseCase(env.requests, env.properties, env.users, env.notifier, env.clock)
	return env
}

func TestUpdateRequestStatus_AcceptMarksPropertyRented(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID)
	request := seedRequest(env.requests, seeker.ID, property, domain.RequestPending)

	updated, err := env.uc.Execute(context.Background(), landlord.ID, request.ID, domain.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, updated.Status)

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, stored.Status)
	require.NotNil(t, stored.RentedAt)
	assert.Equal(t, baseTime, *stored.RentedAt)

	notifications := env.notifier.sentTo(seeker.Email)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyRequestStatus, notifications[0].Kind)
	assert.Equal(t, "accepted", notifications[0].Data["status"])
}

func TestUpdateRequestStatus_OnlyOwnerMayDecide(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	stranger := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID)
	request := seedRequest(env.requests, seeker.ID, property, domain.RequestPending)

	_, err := env.uc.Execute(context.Background(), stranger.ID, request.ID, domain.RequestAccepted)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateRequestStatus_RejectedPaidRequestKeepsRentLock(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	payer := seedUser(env.users, domain.RoleSeeker, true)
	latecomer := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Status = domain.StatusRented
		rentedAt := baseTime
		p.RentedAt = &rentedAt
	})
	paid := seedRequest(env.requests, payer.ID, property, domain.RequestPaid)

	updated, err := env.uc.Execute(context.Background(), landlord.ID, paid.ID, domain.RequestRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, updated.Status)

	// Оплата осталась в истории, объект не освобождается до конца блокировки.
	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, stored.Status)

	env.clock.AdvanceMonths(1)
	pending := seedRequest(env.requests, latecomer.ID, property, domain.RequestPending)
	_, err = env.uc.Execute(context.Background(), landlord.ID, pending.ID, domain.RequestRejected)
	require.NoError(t, err)

	stored, _ = env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, stored.Status)
}

func TestUpdateRequestStatus_RejectFreesPropertyAfterPaidLockExpires(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	payer := seedUser(env.users, domain.RoleSeeker, true)
	latecomer := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Status = domain.StatusRented
		rentedAt := baseTime
		p.RentedAt = &rentedAt
	})
	paid := seedRequest(env.requests, payer.ID, property, domain.RequestPaid)

	_, err := env.uc.Execute(context.Background(), landlord.ID, paid.ID, domain.RequestRejected)
	require.NoError(t, err)

	env.clock.AdvanceMonths(3)
	pending := seedRequest(env.requests, latecomer.ID, property, domain.RequestPending)
	_, err = env.uc.Execute(context.Background(), landlord.ID, pending.ID, domain.RequestRejected)
	require.NoError(t, err)

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusAvailable, stored.Status)
	assert.Nil(t, stored.RentedAt)
}

func TestUpdateRequestStatus_RejectRevertsWhenNothingHoldsProperty(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Status = domain.StatusRented
		rentedAt := baseTime
		p.RentedAt = &rentedAt
	})
	request := seedRequest(env.requests, seeker.ID, property, domain.RequestAccepted)

	_, err := env.uc.Execute(context.Background(), landlord.ID, request.ID, domain.RequestRejected)
	require.NoError(t, err)

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusAvailable, stored.Status)
	assert.Nil(t, stored.RentedAt)
}

func TestUpdateRequestStatus_RejectKeepsRentedWhileAnotherBookingHolds(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	first := seedUser(env.users, domain.RoleSeeker, true)
	second := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Status = domain.StatusRented
		rentedAt := baseTime
		p.RentedAt = &rentedAt
	})
	seedRequest(env.requests, first.ID, property, domain.RequestAccepted)
	rejected := seedRequest(env.requests, second.ID, property, domain.RequestPending)

	_, err := env.uc.Execute(context.Background(), landlord.ID, rejected.ID, domain.RequestRejected)
	require.NoError(t, err)

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, stored.Status)
}

func TestUpdateRequestStatus_RejectKeepsRentedWhilePaidHistoryExists(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	payer := seedUser(env.users, domain.RoleSeeker, true)
	latecomer := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Status = domain.StatusRented
		rentedAt := baseTime
		p.RentedAt = &rentedAt
	})
	seedRequest(env.requests, payer.ID, property, domain.RequestPaid)
	pending := seedRequest(env.requests, latecomer.ID, property, domain.RequestPending)

	// Месяц спустя, блокировка все еще действует.
	env.clock.AdvanceMonths(1)
	_, err := env.uc.Execute(context.Background(), landlord.ID, pending.ID, domain.RequestRejected)
	require.NoError(t, err)

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, stored.Status)
}

func TestUpdateRequestStatus_AcceptRequiresPending(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID)
	request := seedRequest(env.requests, seeker.ID, property, domain.RequestRejected)

	_, err := env.uc.Execute(context.Background(), landlord.ID, request.ID, domain.RequestAccepted)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateRequestStatus_PendingAndPaidAreNotLandlordStatuses(t *testing.T) {
	env := newRequestLifecycleEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := seedProperty(env.properties, landlord.ID)
	request := seedRequest(env.requests, seeker.ID, property, domain.RequestPending)

	_, err := env.uc.Execute(context.Background(), landlord.ID, request.ID, domain.RequestPaid)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = env.uc.Execute(context.Background(), landlord.ID, request.ID, domain.RequestPending)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
