package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type fanoutEnv struct {
	users         *memUserRepo
	roomRequests  *memRoomRequestRepo
	subscriptions *memSubscriptionRepo
	notifier      *recordingNotifier
	uc            *NotifyPropertyMatchesUseCase
}

func newFanoutEnv() *fanoutEnv {
	env := &fanoutEnv{
		users:         newMemUserRepo(),
		roomRequests:  newMemRoomRequestRepo(),
		subscriptions: newMemSubscriptionRepo(),
		notifier:      newRecordingNotifier(),
	}
	env.uc = NewNotifyPropertyMatchesUseCase(env.roomRequests, env.subscriptions, env.users, env.notifier)
	return env
}

func (env *fanoutEnv) seedRoomRequest(seekerID uuid.UUID, mutate ...func(*domain.RoomRequest)) *domain.RoomRequest {
	maxPrice := int64(20000)
	minBedrooms := 1
	roomType := domain.TypeRoom
	request := &domain.RoomRequest{
		ID:          uuid.New(),
		SeekerID:    seekerID,
		City:        "Kathmandu",
		MaxPrice:    &maxPrice,
		MinBedrooms: &minBedrooms,
		Type:        &roomType,
		Active:      true,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
	for _, fn := range mutate {
		fn(request)
	}
	_ = env.roomRequests.Create(context.Background(), request)
	return request
}

func TestNotifyPropertyMatches_MatchingSeekersGetOneEmailEach(t *testing.T) {
	env := newFanoutEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	matching := seedUser(env.users, domain.RoleSeeker, true)
	tooExpensive := seedUser(env.users, domain.RoleSeeker, true)
	otherCity := seedUser(env.users, domain.RoleSeeker, true)

	env.seedRoomRequest(matching.ID)
	env.seedRoomRequest(tooExpensive.ID, func(r *domain.RoomRequest) {
		limit := int64(10000)
		r.MaxPrice = &limit
	})
	env.seedRoomRequest(otherCity.ID, func(r *domain.RoomRequest) {
		r.City = "Pokhara"
	})

	property := &domain.Property{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		Title:      "Room in Baneshwor",
		City:       "kathmandu", // регистр города не должен мешать матчу
		Price:      15000,
		Bedrooms:   1,
		Type:       domain.TypeRoom,
		Status:     domain.StatusAvailable,
		Verified:   true,
	}

	require.NoError(t, env.uc.Execute(context.Background(), property))

	assert.Len(t, env.notifier.sentTo(matching.Email), 1)
	assert.Empty(t, env.notifier.sentTo(tooExpensive.Email))
	assert.Empty(t, env.notifier.sentTo(otherCity.Email))

	sent := env.notifier.sentTo(matching.Email)[0]
	assert.Equal(t, domain.NotifyRoomMatch, sent.Kind)
	assert.Equal(t, property.Title, sent.Data["property_title"])
	assert.Equal(t, "15000", sent.Data["price"])
}

func TestNotifyPropertyMatches_FailureDoesNotStopFanout(t *testing.T) {
	env := newFanoutEnv()
	seedUser(env.users, domain.RoleLandlord, true)
	broken := seedUser(env.users, domain.RoleSeeker, true)
	healthy := seedUser(env.users, domain.RoleSeeker, true)

	env.seedRoomRequest(broken.ID)
	env.seedRoomRequest(healthy.ID)
	env.notifier.failFor[broken.Email] = true

	property := &domain.Property{
		ID:       uuid.New(),
		City:     "Kathmandu",
		Price:    15000,
		Bedrooms: 1,
		Type:     domain.TypeRoom,
		Status:   domain.StatusAvailable,
		Verified: true,
	}

	require.NoError(t, env.uc.Execute(context.Background(), property))
	assert.Len(t, env.notifier.sentTo(healthy.Email), 1)
}

func TestNotifyPropertyMatches_RequestAndSubscriptionAreIndependentChannels(t *testing.T) {
	env := newFanoutEnv()
	both := seedUser(env.users, domain.RoleSeeker, true)
	subscriberOnly := seedUser(env.users, domain.RoleSeeker, true)
	wrongDistrict := seedUser(env.users, domain.RoleSeeker, true)

	env.seedRoomRequest(both.ID)
	for seekerID, district := range map[uuid.UUID]string{
		both.ID:           "",
		subscriberOnly.ID: "",
		wrongDistrict.ID:  "Thamel",
	} {
		_ = env.subscriptions.Create(context.Background(), &domain.AvailabilitySubscription{
			ID:       uuid.New(),
			SeekerID: seekerID,
			City:     "Kathmandu",
			District: district,
			Active:   true,
		})
	}
	// Пересекающиеся подписки одного seeker-а схлопываются в одно письмо.
	_ = env.subscriptions.Create(context.Background(), &domain.AvailabilitySubscription{
		ID:       uuid.New(),
		SeekerID: subscriberOnly.ID,
		City:     "Kathmandu",
		District: "Baneshwor",
		Active:   true,
	})

	property := &domain.Property{
		ID:       uuid.New(),
		City:     "Kathmandu",
		District: "Baneshwor",
		Price:    15000,
		Bedrooms: 1,
		Type:     domain.TypeRoom,
		Status:   domain.StatusAvailable,
		Verified: true,
	}

	require.NoError(t, env.uc.Execute(context.Background(), property))

	assert.Len(t, env.notifier.sentTo(both.Email), 2, "room request and subscription each send their own email")
	assert.Len(t, env.notifier.sentTo(subscriberOnly.Email), 1)
	assert.Empty(t, env.notifier.sentTo(wrongDistrict.Email))
}

func TestNotifyPropertyMatches_HiddenPropertySkipsFanout(t *testing.T) {
	env := newFanoutEnv()
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	env.seedRoomRequest(seeker.ID)

	property := &domain.Property{
		ID:       uuid.New(),
		City:     "Kathmandu",
		Price:    15000,
		Bedrooms: 1,
		Type:     domain.TypeRoom,
		Status:   domain.StatusAvailable,
		Verified: false,
	}

	require.NoError(t, env.uc.Execute(context.Background(), property))
	assert.Empty(t, env.notifier.sent)
}
