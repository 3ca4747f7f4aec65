package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

type roomRequestEnv struct {
	users        *memUserRepo
	properties   *memPropertyRepo
	roomRequests *memRoomRequestRepo
	notifier     *recordingNotifier
	clock        *fakeClock
	create       *CreateRoomRequestUseCase
	update       *UpdateRoomRequestUseCase
}

func newRoomRequestEnv() *roomRequestEnv {
	env := &roomRequestEnv{
		users:        newMemUserRepo(),
		properties:   newMemPropertyRepo(),
		roomRequests: newMemRoomRequestRepo(),
		notifier:     newRecordingNotifier(),
		clock:        newFakeClock(baseTime),
	}
	notifyMatches := NewNotifyRoomRequestMatchesUseCase(env.properties, env.users, env.notifier)
	env.create = NewCreateRoomRequestUseCase(env.roomRequests, env.users, notifyMatches, env.clock)
	env.update = NewUpdateRoomRequestUseCase(env.roomRequests, notifyMatches, env.clock)
	return env
}

func TestCreateRoomRequest_SingleActivePerSeeker(t *testing.T) {
	env := newRoomRequestEnv()
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	draft := domain.RoomRequestDraft{City: "Kathmandu"}

	created, err := env.create.Execute(context.Background(), seeker.ID, draft)
	require.NoError(t, err)
	assert.True(t, created.Active)

	_, err = env.create.Execute(context.Background(), seeker.ID, draft)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateRoomRequest_ValidatesBounds(t *testing.T) {
	env := newRoomRequestEnv()
	seeker := seedUser(env.users, domain.RoleSeeker, true)

	_, err := env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	low, high := int64(20000), int64(10000)
	_, err = env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{City: "Kathmandu", MinPrice: &low, MaxPrice: &high})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestCreateRoomRequest_NotifiesAboutExistingListings(t *testing.T) {
	env := newRoomRequestEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)

	matching := seedProperty(env.properties, landlord.ID)
	seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Title = "Too expensive flat"
		p.Price = 50000
	})
	seedProperty(env.properties, landlord.ID, func(p *domain.Property) {
		p.Title = "Not yet verified"
		p.Verified = false
	})

	maxPrice := int64(20000)
	_, err := env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{
		City:     "Kathmandu",
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)

	notifications := env.notifier.sentTo(seeker.Email)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyRoomMatch, notifications[0].Kind)
	assert.Equal(t, matching.Title, notifications[0].Data["property_title"])
}

func TestCreateRoomRequest_NotificationFailureDoesNotFailCreate(t *testing.T) {
	env := newRoomRequestEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	seedProperty(env.properties, landlord.ID)
	env.notifier.failFor[seeker.Email] = true

	created, err := env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{City: "Kathmandu"})
	require.NoError(t, err)
	assert.True(t, created.Active)
}

func TestUpdateRoomRequest_RefansOutWhileActive(t *testing.T) {
	env := newRoomRequestEnv()
	landlord := seedUser(env.users, domain.RoleLandlord, true)
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	seedProperty(env.properties, landlord.ID)

	created, err := env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{City: "Pokhara"})
	require.NoError(t, err)
	assert.Empty(t, env.notifier.sentTo(seeker.Email))

	// Смена города на подходящий перезапускает рассылку.
	_, err = env.update.Execute(context.Background(), seeker.ID, created.ID, domain.RoomRequestDraft{City: "Kathmandu"}, nil)
	require.NoError(t, err)
	assert.Len(t, env.notifier.sentTo(seeker.Email), 1)

	// По деактивированному запросу рассылки нет.
	inactive := false
	_, err = env.update.Execute(context.Background(), seeker.ID, created.ID, domain.RoomRequestDraft{City: "Kathmandu"}, &inactive)
	require.NoError(t, err)
	assert.Len(t, env.notifier.sentTo(seeker.Email), 1)
}

func TestUpdateRoomRequest_DeactivateThenCreateNew(t *testing.T) {
	env := newRoomRequestEnv()
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	first, err := env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{City: "Kathmandu"})
	require.NoError(t, err)

	inactive := false
	_, err = env.update.Execute(context.Background(), seeker.ID, first.ID, domain.RoomRequestDraft{City: "Kathmandu"}, &inactive)
	require.NoError(t, err)

	// После деактивации место для нового активного запроса свободно.
	_, err = env.create.Execute(context.Background(), seeker.ID, domain.RoomRequestDraft{City: "Pokhara"})
	assert.NoError(t, err)
}

func TestUpdateRoomRequest_ReactivationBlockedByOtherActive(t *testing.T) {
	env := newRoomRequestEnv()
	seeker := seedUser(env.users, domain.RoleSeeker, true)
	dormant := &domain.RoomRequest{ID: newRandomID(), SeekerID: seeker.ID, City: "Kathmandu", Active: false}
	active := &domain.RoomRequest{ID: newRandomID(), SeekerID: seeker.ID, City: "Pokhara", Active: true}
	require.NoError(t, env.roomRequests.Create(context.Background(), dormant))
	require.NoError(t, env.roomRequests.Create(context.Background(), active))

	reactivate := true
	_, err := env.update.Execute(context.Background(), seeker.ID, dormant.ID, domain.RoomRequestDraft{City: "Kathmandu"}, &reactivate)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateRoomRequest_OwnerOnly(t *testing.T) {
	env := newRoomRequestEnv()
	owner := seedUser(env.users, domain.RoleSeeker, true)
	stranger := seedUser(env.users, domain.RoleSeeker, true)
	request := &domain.RoomRequest{ID: newRandomID(), SeekerID: owner.ID, City: "Kathmandu", Active: true}
	require.NoError(t, env.roomRequests.Create(context.Background(), request))

	_, err := env.update.Execute(context.Background(), stranger.ID, request.ID, domain.RoomRequestDraft{City: "Kathmandu"}, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSubscribeAvailability_DeduplicatesSameScope(t *testing.T) {
	users := newMemUserRepo()
	subscriptions := newMemSubscriptionRepo()
	uc := NewSubscribeAvailabilityUseCase(subscriptions, newFakeClock(baseTime))

	seeker := seedUser(users, domain.RoleSeeker, true)

	first, err := uc.Execute(context.Background(), seeker.ID, "Kathmandu", "Baneshwor")
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), seeker.ID, "kathmandu", "baneshwor")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same scope must reuse the subscription")

	other, err := uc.Execute(context.Background(), seeker.ID, "Kathmandu", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestUnsubscribeAvailability_DeactivatesOwnOnly(t *testing.T) {
	users := newMemUserRepo()
	subscriptions := newMemSubscriptionRepo()
	subscribe := NewSubscribeAvailabilityUseCase(subscriptions, newFakeClock(baseTime))
	unsubscribe := NewUnsubscribeAvailabilityUseCase(subscriptions)

	owner := seedUser(users, domain.RoleSeeker, true)
	stranger := seedUser(users, domain.RoleSeeker, true)

	sub, err := subscribe.Execute(context.Background(), owner.ID, "Kathmandu", "")
	require.NoError(t, err)

	assert.ErrorIs(t, unsubscribe.Execute(context.Background(), stranger.ID, sub.ID), domain.ErrUnauthorized)

	require.NoError(t, unsubscribe.Execute(context.Background(), owner.ID, sub.ID))
	stored, _ := subscriptions.FindByID(context.Background(), sub.ID)
	assert.False(t, stored.Active)
}
