package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

func TestConfirmBookingPayment_MarksRequestPaidAndStampsProperty(t *testing.T) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	clock := newFakeClock(baseTime)
	uc := NewConfirmBookingPaymentUseCase(requests, properties, clock)

	landlord := seedUser(users, domain.RoleLandlord, true)
	seeker := seedUser(users, domain.RoleSeeker, true)
	property := seedProperty(properties, landlord.ID)
	request := seedRequest(requests, seeker.ID, property, domain.RequestAccepted)

	require.NoError(t, uc.Execute(context.Background(), request.ID))

	storedRequest, _ := requests.FindByID(context.Background(), request.ID)
	assert.Equal(t, domain.RequestPaid, storedRequest.Status)
	require.NotNil(t, storedRequest.PaidAt)
	assert.Equal(t, baseTime, *storedRequest.PaidAt)

	storedProperty, _ := properties.FindByID(context.Background(), property.ID)
	assert.Equal(t, domain.StatusRented, storedProperty.Status)
	require.NotNil(t, storedProperty.RentedAt)
	assert.Equal(t, baseTime, *storedProperty.RentedAt)
}

func TestConfirmBookingPayment_IsIdempotentAndRefreshesRentedStamp(t *testing.T) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	clock := newFakeClock(baseTime)
	uc := NewConfirmBookingPaymentUseCase(requests, properties, clock)

	landlord := seedUser(users, domain.RoleLandlord, true)
	seeker := seedUser(users, domain.RoleSeeker, true)
	property := seedProperty(properties, landlord.ID)
	request := seedRequest(requests, seeker.ID, property, domain.RequestAccepted)

	require.NoError(t, uc.Execute(context.Background(), request.ID))

	// Повторное подтверждение (retry шлюза) не ошибка, rented-метка
	// переписывается на новый момент оплаты.
	clock.Advance(48 * time.Hour)
	require.NoError(t, uc.Execute(context.Background(), request.ID))

	storedRequest, _ := requests.FindByID(context.Background(), request.ID)
	assert.Equal(t, domain.RequestPaid, storedRequest.Status)

	storedProperty, _ := properties.FindByID(context.Background(), property.ID)
	require.NotNil(t, storedProperty.RentedAt)
	assert.Equal(t, baseTime.Add(48*time.Hour), *storedProperty.RentedAt)
}

func TestConfirmBookingPayment_RejectedRequestCannotBePaid(t *testing.T) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	uc := NewConfirmBookingPaymentUseCase(requests, properties, newFakeClock(baseTime))

	landlord := seedUser(users, domain.RoleLandlord, true)
	seeker := seedUser(users, domain.RoleSeeker, true)
	property := seedProperty(properties, landlord.ID)
	request := seedRequest(requests, seeker.ID, property, domain.RequestRejected)

	assert.ErrorIs(t, uc.Execute(context.Background(), request.ID), domain.ErrConflict)
}

func TestConfirmBookingPayment_UnknownRequest(t *testing.T) {
	uc := NewConfirmBookingPaymentUseCase(newMemRequestRepo(), newMemPropertyRepo(), newFakeClock(baseTime))
	err := uc.Execute(context.Background(), newRandomID())
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}
