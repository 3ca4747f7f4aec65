package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoomRequest - "стоячий" запрос seeker-а: критерии, по которым он хочет
// получать уведомления о новых подходящих объектах. У одного seeker-а может
// быть не больше одной активной записи.
type RoomRequest struct {
	ID          uuid.UUID
	SeekerID    uuid.UUID
	City        string
	District    string
	MinPrice    *int64
	MaxPrice    *int64
	MinBedrooms *int
	MaxBedrooms *int
	Type        *PropertyType // nil = любой тип подходит
	Notes       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Matches - чистый предикат соответствия объекта запросу.
// Конъюнкция независимых фильтров, незаданная граница пропускает проверку.
// District в матчинге НЕ участвует (он используется только в подписках
// на доступность).
func (r *RoomRequest) Matches(p *Property) bool {
	if !strings.EqualFold(r.City, p.City) {
		return false
	}
	if r.MaxPrice != nil && p.Price > *r.MaxPrice {
		return false
	}
	if r.MinPrice != nil && p.Price < *r.MinPrice {
		return false
	}
	if r.MinBedrooms != nil && p.Bedrooms < *r.MinBedrooms {
		return false
	}
	if r.MaxBedrooms != nil && p.Bedrooms > *r.MaxBedrooms {
		return false
	}
	if r.Type != nil && p.Type != *r.Type {
		return false
	}
	return true
}
