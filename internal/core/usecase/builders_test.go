package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

var baseTime = time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)

func newRandomID() uuid.UUID { return uuid.New() }

func seedUser(repo *memUserRepo, role domain.Role, verified bool) *domain.User {
	user := &domain.User{
		ID:                 uuid.New(),
		FullName:           "Test " + string(role),
		Email:              uuid.NewString() + "@example.com",
		PasswordHash:       "irrelevant",
		Role:               role,
		VerificationStatus: domain.VerificationPending,
		SubscriptionStatus: domain.SubscriptionFree,
		CreatedAt:          baseTime,
		UpdatedAt:          baseTime,
	}
	if verified {
		user.VerificationStatus = domain.VerificationVerified
	}
	_ = repo.Create(context.Background(), user)
	return user
}

func seedProperty(repo *memPropertyRepo, landlordID uuid.UUID, mutate ...func(*domain.Property)) *domain.Property {
	property := &domain.Property{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Title:      "Sunny room in Baneshwor",
		City:       "Kathmandu",
		District:   "Baneshwor",
		Price:      15000,
		Bedrooms:   1,
		Bathrooms:  1,
		Area:       180,
		Type:       domain.TypeRoom,
		Status:     domain.StatusAvailable,
		Verified:   true,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	for _, fn := range mutate {
		fn(property)
	}
	_ = repo.Create(context.Background(), property)
	return property
}

func seedRequest(repo *memRequestRepo, seekerID uuid.UUID, property *domain.Property, status domain.RequestStatus) *domain.PropertyRequest {
	request := &domain.PropertyRequest{
		ID:         uuid.New(),
		SeekerID:   seekerID,
		PropertyID: property.ID,
		Message:    "interested",
		Status:     status,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	if status == domain.RequestPaid {
		paidAt := baseTime
		request.PaidAt = &paidAt
	}
	_ = repo.Create(context.Background(), request)
	repo.landlordOf[property.ID] = property.LandlordID
	return request
}
