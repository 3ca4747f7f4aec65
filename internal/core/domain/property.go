package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	TypeRoom      PropertyType = "room"
	TypeFlat      PropertyType = "flat"
	TypeApartment PropertyType = "apartment"
	TypeHouse     PropertyType = "house"
)

func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(s) {
	case TypeRoom, TypeFlat, TypeApartment, TypeHouse:
		return PropertyType(s), nil
	}
	return "", fmt.Errorf("%w: unknown property type %q", ErrInvalid, s)
}

type PropertyStatus string

const (
	StatusAvailable   PropertyStatus = "available"
	StatusRented      PropertyStatus = "rented"
	StatusUnavailable PropertyStatus = "unavailable"
)

func ParsePropertyStatus(s string) (PropertyStatus, error) {
	switch PropertyStatus(s) {
	case StatusAvailable, StatusRented, StatusUnavailable:
		return PropertyStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown property status %q", ErrInvalid, s)
}

// rentLockMonths - сколько месяцев объект остается RENTED после оплаченной
// аренды, прежде чем его можно вернуть в AVAILABLE.
const rentLockMonths = 3

// Property - объект недвижимости, принадлежит ровно одному landlord.
type Property struct {
	ID          uuid.UUID
	LandlordID  uuid.UUID
	Title       string
	Description string
	Address     string
	City        string
	District    string
	Province    string
	Latitude    *float64
	Longitude   *float64
	Geohash     string // вычисляется адаптером из координат, для гео-поиска
	Price       int64  // NPR в месяц
	Bedrooms    int
	Bathrooms   int
	Area        float64 // кв. футы
	Type        PropertyType
	Status      PropertyStatus
	Verified    bool
	RentedAt    *time.Time // ставится при переходе в RENTED
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VisibleToSeekers: объект виден в поиске только если он верифицирован
// админом И доступен.
func (p *Property) VisibleToSeekers() bool {
	return p.Verified && p.Status == StatusAvailable
}

// LockExpiresAt возвращает момент, когда истекает блокировка после аренды.
// Если rented-метка не ставилась, блокировки нет.
func (p *Property) LockExpiresAt() (time.Time, bool) {
	if p.RentedAt == nil {
		return time.Time{}, false
	}
	return p.RentedAt.AddDate(0, rentLockMonths, 0), true
}

// CanRevertToAvailable решает, можно ли вернуть RENTED-объект в AVAILABLE.
// Правило: если по объекту никогда не было оплаченной заявки - можно сразу;
// иначе только после истечения блокировки.
func (p *Property) CanRevertToAvailable(now time.Time, everPaid bool) bool {
	if !everPaid {
		return true
	}
	expires, ok := p.LockExpiresAt()
	if !ok {
		return true
	}
	return !now.Before(expires)
}

// DaysUntilUnlock - сколько полных дней осталось до снятия блокировки.
func (p *Property) DaysUntilUnlock(now time.Time) int {
	expires, ok := p.LockExpiresAt()
	if !ok || !now.Before(expires) {
		return 0
	}
	return int(expires.Sub(now).Hours() / 24)
}

// MarkRented переводит объект в RENTED. Метка времени ставится, только если
// ее еще нет (идемпотентность Accept); force перезаписывает ее (оплата).
func (p *Property) MarkRented(now time.Time, force bool) {
	p.Status = StatusRented
	if p.RentedAt == nil || force {
		t := now.UTC()
		p.RentedAt = &t
	}
}

// MarkAvailable возвращает объект в AVAILABLE и сбрасывает rented-метку.
func (p *Property) MarkAvailable() {
	p.Status = StatusAvailable
	p.RentedAt = nil
}
