package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

func TestSearchProperties_HidesUnverifiedAndNonAvailable(t *testing.T) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	uc := NewSearchPropertiesUseCase(properties, requests, newFakeClock(baseTime))

	landlord := seedUser(users, domain.RoleLandlord, true)
	visible := seedProperty(properties, landlord.ID)
	seedProperty(properties, landlord.ID, func(p *domain.Property) { p.Verified = false })
	seedProperty(properties, landlord.ID, func(p *domain.Property) { p.Status = domain.StatusUnavailable })

	results, err := uc.Execute(context.Background(), port.PropertySearchFilter{City: "Kathmandu"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visible.ID, results[0].ID)
}

func TestSearchProperties_HealsBookedListingLeftAvailable(t *testing.T) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	uc := NewSearchPropertiesUseCase(properties, requests, newFakeClock(baseTime))

	landlord := seedUser(users, domain.RoleLandlord, true)
	seeker := seedUser(users, domain.RoleSeeker, true)

	// Заявка принята, но статус объекта не обновился.
	stale := seedProperty(properties, landlord.ID)
	seedRequest(requests, seeker.ID, stale, domain.RequestAccepted)

	results, err := uc.Execute(context.Background(), port.PropertySearchFilter{City: "Kathmandu"})
	require.NoError(t, err)
	assert.Empty(t, results, "booked listing must not appear in search")

	healed, _ := properties.FindByID(context.Background(), stale.ID)
	assert.Equal(t, domain.StatusRented, healed.Status)
	assert.NotNil(t, healed.RentedAt)
}

func TestSearchProperties_PriceFilter(t *testing.T) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	uc := NewSearchPropertiesUseCase(properties, requests, newFakeClock(baseTime))

	landlord := seedUser(users, domain.RoleLandlord, true)
	cheap := seedProperty(properties, landlord.ID, func(p *domain.Property) { p.Price = 8000 })
	seedProperty(properties, landlord.ID, func(p *domain.Property) { p.Price = 30000 })

	maxPrice := int64(10000)
	results, err := uc.Execute(context.Background(), port.PropertySearchFilter{City: "Kathmandu", MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, cheap.ID, results[0].ID)
}
