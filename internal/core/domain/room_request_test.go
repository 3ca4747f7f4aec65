package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrInt64(v int64) *int64 { return &v }
func ptrInt(v int) *int       { return &v }
func ptrType(t PropertyType) *PropertyType {
	return &t
}

func TestRoomRequestMatches(t *testing.T) {
	property := &Property{
		City:     "Kathmandu",
		District: "Baneshwor",
		Price:    15000,
		Bedrooms: 1,
		Type:     TypeRoom,
		Status:   StatusAvailable,
		Verified: true,
	}

	t.Run("full match", func(t *testing.T) {
		req := &RoomRequest{
			City:        "Kathmandu",
			MaxPrice:    ptrInt64(20000),
			MinBedrooms: ptrInt(1),
			Type:        ptrType(TypeRoom),
		}
		assert.True(t, req.Matches(property))
	})

	t.Run("type mismatch rejects", func(t *testing.T) {
		req := &RoomRequest{
			City:        "Kathmandu",
			MaxPrice:    ptrInt64(20000),
			MinBedrooms: ptrInt(1),
			Type:        ptrType(TypeFlat),
		}
		assert.False(t, req.Matches(property))
	})

	t.Run("city is case-insensitive", func(t *testing.T) {
		req := &RoomRequest{City: "kathmandu"}
		assert.True(t, req.Matches(property))
	})

	t.Run("city mismatch rejects", func(t *testing.T) {
		req := &RoomRequest{City: "Pokhara"}
		assert.False(t, req.Matches(property))
	})

	t.Run("district does not participate in matching", func(t *testing.T) {
		req := &RoomRequest{City: "Kathmandu", District: "Lalitpur"}
		assert.True(t, req.Matches(property))
	})

	t.Run("price bounds", func(t *testing.T) {
		tooExpensive := &RoomRequest{City: "Kathmandu", MaxPrice: ptrInt64(10000)}
		assert.False(t, tooExpensive.Matches(property))

		tooCheap := &RoomRequest{City: "Kathmandu", MinPrice: ptrInt64(16000)}
		assert.False(t, tooCheap.Matches(property))

		inBand := &RoomRequest{City: "Kathmandu", MinPrice: ptrInt64(10000), MaxPrice: ptrInt64(15000)}
		assert.True(t, inBand.Matches(property))
	})

	t.Run("bedroom bounds", func(t *testing.T) {
		wantsMore := &RoomRequest{City: "Kathmandu", MinBedrooms: ptrInt(2)}
		assert.False(t, wantsMore.Matches(property))

		wantsFewer := &RoomRequest{City: "Kathmandu", MaxBedrooms: ptrInt(0)}
		assert.False(t, wantsFewer.Matches(property))
	})

	t.Run("unset filters match anything", func(t *testing.T) {
		req := &RoomRequest{City: "Kathmandu"}
		assert.True(t, req.Matches(property))
	})
}

func TestSubscriptionMatchesProperty(t *testing.T) {
	property := &Property{City: "Kathmandu", District: "Baneshwor"}

	assert.True(t, (&AvailabilitySubscription{City: "kathmandu"}).MatchesProperty(property))
	assert.True(t, (&AvailabilitySubscription{City: "Kathmandu", District: "baneshwor"}).MatchesProperty(property))
	assert.False(t, (&AvailabilitySubscription{City: "Kathmandu", District: "Lalitpur"}).MatchesProperty(property))
	assert.False(t, (&AvailabilitySubscription{City: "Pokhara"}).MatchesProperty(property))
}
