package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AvailabilitySubscription - подписка seeker-а на появление любых доступных
// объектов в городе (опционально - в районе). Независима от RoomRequest.
type AvailabilitySubscription struct {
	ID        uuid.UUID
	SeekerID  uuid.UUID
	City      string
	District  string // пустая строка = весь город
	Active    bool
	CreatedAt time.Time
}

// MatchesProperty: город обязателен, район сравнивается только если задан.
func (s *AvailabilitySubscription) MatchesProperty(p *Property) bool {
	if !strings.EqualFold(s.City, p.City) {
		return false
	}
	if s.District != "" && !strings.EqualFold(s.District, p.District) {
		return false
	}
	return true
}
