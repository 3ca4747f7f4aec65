package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type statusEnv struct {
	users      *memUserRepo
	properties *memPropertyRepo
	requests   *memRequestRepo
	clock      *fakeClock
	uc         *UpdatePropertyStatusUseCase
}

func newStatusEnv() *statusEnv {
	env := &statusEnv{
		users:      newMemUserRepo(),
		properties: newMemPropertyRepo(),
		requests:   newMemRequestRepo(),
		clock:      newFakeClock(baseTime),
	}
	env.uc = NewUpdatePropertyStatusUseCase(env.properties, env.requests, env.clock)
	return env
}

func (env *statusEnv) rentedProperty(landlordID, seekerID uuid.UUID, paid bool) *domain.Property {
	property := seedProperty(env.properties, landlordID, func(p *domain.Property) {
		p.Status = domain.StatusRented
		rentedAt := baseTime
		p.RentedAt = &rentedAt
	})
	status := domain.RequestAccepted
	if paid {
		status = domain.RequestPaid
	}
	seedRequest(env.requests, seekerID, property, status)
	return property
}

func TestUpdatePropertyStatus_RevertAllowedWhenNeverPaid(t *testing.T) {
	env := newStatusEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := env.rentedProperty(landlord.ID, seeker.ID, false)

	updated, err := env.uc.Execute(context.Background(), landlord.ID, property.ID, domain.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, updated.Status)
	assert.Nil(t, updated.RentedAt)
}

func TestUpdatePropertyStatus_RentLockBlocksRevertWithinWindow(t *testing.T) {
	env := newStatusEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := env.rentedProperty(landlord.ID, seeker.ID, true)

	// Два месяца из трех: блокировка еще держит.
	env.clock.AdvanceMonths(2)
	_, err := env.uc.Execute(context.Background(), landlord.ID, property.ID, domain.StatusAvailable)
	require.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.Contains(t, err.Error(), "day")

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, stored.Status)
}

func TestUpdatePropertyStatus_RevertAllowedAfterLockExpires(t *testing.T) {
	env := newStatusEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := env.rentedProperty(landlord.ID, seeker.ID, true)

	env.clock.AdvanceMonths(3)
	updated, err := env.uc.Execute(context.Background(), landlord.ID, property.ID, domain.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, updated.Status)
}

func TestUpdatePropertyStatus_ManualRentStampsTimestamp(t *testing.T) {
	env := newStatusEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	property := seedProperty(env.properties, landlord.ID)

	updated, err := env.uc.Execute(context.Background(), landlord.ID, property.ID, domain.StatusRented)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRented, updated.Status)
	require.NotNil(t, updated.RentedAt)
}

func TestUpdatePropertyStatus_UnavailableClearsRentedStamp(t *testing.T) {
	env := newStatusEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	property := env.rentedProperty(landlord.ID, seeker.ID, true)

	updated, err := env.uc.Execute(context.Background(), landlord.ID, property.ID, domain.StatusUnavailable)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnavailable, updated.Status)
	assert.Nil(t, updated.RentedAt)

	stored, _ := env.properties.FindByID(context.Background(), property.ID)
	assert.Nil(t, stored.RentedAt)
}

func TestUpdatePropertyStatus_OwnerOnly(t *testing.T) {
	env := newStatusEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	stranger := seedUser(env.users, domain.RoleLandlord, true)
	property := seedProperty(env.properties, landlord.ID)

	_, err := env.uc.Execute(context.Background(), stranger.ID, property.ID, domain.StatusUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
