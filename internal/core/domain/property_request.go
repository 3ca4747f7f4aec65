package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
	RequestPaid     RequestStatus = "paid"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestPending, RequestAccepted, RequestRejected, RequestPaid:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown request status %q", ErrInvalid, s)
}

// PropertyRequest - заявка seeker-а на конкретный объект.
// PENDING -> ACCEPTED | REJECTED; ACCEPTED -> PAID (внешнее подтверждение
// оплаты). REJECTED может быть удалена seeker-ом. PAID тоже может быть
// отклонена владельцем, но факт оплаты остается в PaidAt: блокировка аренды
// считается по истории, а не по текущему статусу.
type PropertyRequest struct {
	ID         uuid.UUID
	SeekerID   uuid.UUID
	PropertyID uuid.UUID
	Message    string
	Status     RequestStatus
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WasPaid: по заявке проходила оплата, даже если позже она была отклонена.
func (r *PropertyRequest) WasPaid() bool {
	return r.Status == RequestPaid || r.PaidAt != nil
}

// IsActive: активная заявка блокирует создание новой по той же паре
// seeker+property.
func (r *PropertyRequest) IsActive() bool {
	return r.Status == RequestPending || r.Status == RequestAccepted
}
