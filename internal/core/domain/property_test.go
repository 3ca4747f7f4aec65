package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestPropertyVisibility(t *testing.T) {
	cases := []struct {
		name     string
		verified bool
		status   PropertyStatus
		visible  bool
	}{
		{"verified and available", true, StatusAvailable, true},
		{"unverified", false, StatusAvailable, false},
		{"rented", true, StatusRented, false},
		{"unavailable", true, StatusUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Property{Verified: tc.verified, Status: tc.status}
			assert.Equal(t, tc.visible, p.VisibleToSeekers())
		})
	}
}

func TestRentLock(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("never paid reverts immediately", func(t *testing.T) {
		rented := now.AddDate(0, 0, -10)
		p := &Property{Status: StatusRented, RentedAt: &rented}
		assert.True(t, p.CanRevertToAvailable(now, false))
	})

	t.Run("paid within lock window stays rented", func(t *testing.T) {
		rented := now.AddDate(0, 0, -10)
		p := &Property{Status: StatusRented, RentedAt: &rented}
		assert.False(t, p.CanRevertToAvailable(now, true))
		assert.Greater(t, p.DaysUntilUnlock(now), 0)
	})

	t.Run("paid after lock expiry reverts", func(t *testing.T) {
		rented := now.AddDate(0, -4, 0)
		p := &Property{Status: StatusRented, RentedAt: &rented}
		assert.True(t, p.CanRevertToAvailable(now, true))
		assert.Zero(t, p.DaysUntilUnlock(now))
	})

	t.Run("no rented timestamp means no lock", func(t *testing.T) {
		p := &Property{Status: StatusRented}
		assert.True(t, p.CanRevertToAvailable(now, true))
	})
}

func TestMarkRented(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.AddDate(0, 0, -5)

	p := &Property{Status: StatusAvailable}
	p.MarkRented(earlier, false)
	require.NotNil(t, p.RentedAt)
	assert.Equal(t, earlier, *p.RentedAt)

	// повторный accept не двигает метку
	p.MarkRented(now, false)
	assert.Equal(t, earlier, *p.RentedAt)

	// оплата перезаписывает
	p.MarkRented(now, true)
	assert.Equal(t, now, *p.RentedAt)

	p.MarkAvailable()
	assert.Equal(t, StatusAvailable, p.Status)
	assert.Nil(t, p.RentedAt)
}

func TestTransactionRefRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ref := NewTransactionRef(TransactionBooking, mustUUID(t, "7b7d3a45-9f68-4a9e-bb13-85a1fb4a8e01"), now)

	parsed, err := ParseTransactionRef(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref.Kind, parsed.Kind)
	assert.Equal(t, ref.TargetID, parsed.TargetID)
	assert.Equal(t, ref.IssuedAt, parsed.IssuedAt)
}

func TestParseTransactionRefErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"BOOKING_7b7d3a45-9f68-4a9e-bb13-85a1fb4a8e01", // нет таймстемпа
		"REFUND_7b7d3a45-9f68-4a9e-bb13-85a1fb4a8e01_170000",
		"BOOKING_not-a-uuid_170000",
		"BOOKING_7b7d3a45-9f68-4a9e-bb13-85a1fb4a8e01_xx",
	} {
		_, err := ParseTransactionRef(raw)
		assert.ErrorIs(t, err, ErrInvalid, "raw=%q", raw)
	}
}
