package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionKind определяет, куда маршрутизируется подтверждение оплаты:
// booking - в жизненный цикл заявки, subscription - в апгрейд тарифа.
type TransactionKind string

const (
	TransactionBooking      TransactionKind = "BOOKING"
	TransactionSubscription TransactionKind = "SUBSCRIPTION"
)

// TransactionRef - типизированная ссылка на транзакцию. Платежный шлюз
// по-прежнему получает строку вида "BOOKING_<uuid>_<unixmilli>", но внутри
// ядра она парсится ровно один раз и дальше ходит типизированной.
type TransactionRef struct {
	Kind     TransactionKind
	TargetID uuid.UUID // id заявки (booking) или пользователя (subscription)
	IssuedAt time.Time
}

func NewTransactionRef(kind TransactionKind, targetID uuid.UUID, now time.Time) TransactionRef {
	return TransactionRef{Kind: kind, TargetID: targetID, IssuedAt: now.UTC()}
}

// String собирает wire-формат для шлюза.
func (t TransactionRef) String() string {
	return fmt.Sprintf("%s_%s_%d", t.Kind, t.TargetID, t.IssuedAt.UnixMilli())
}

// ParseTransactionRef разбирает transaction_uuid, пришедший в callback-е шлюза.
func ParseTransactionRef(s string) (TransactionRef, error) {
	parts := strings.SplitN(s, "_", 3)
	if len(parts) != 3 {
		return TransactionRef{}, fmt.Errorf("%w: malformed transaction ref %q", ErrInvalid, s)
	}

	var kind TransactionKind
	switch TransactionKind(parts[0]) {
	case TransactionBooking, TransactionSubscription:
		kind = TransactionKind(parts[0])
	default:
		return TransactionRef{}, fmt.Errorf("%w: unknown transaction kind %q", ErrInvalid, parts[0])
	}

	targetID, err := uuid.Parse(parts[1])
	if err != nil {
		return TransactionRef{}, fmt.Errorf("%w: bad target id in transaction ref: %v", ErrInvalid, err)
	}

	millis, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return TransactionRef{}, fmt.Errorf("%w: bad timestamp in transaction ref: %v", ErrInvalid, err)
	}

	return TransactionRef{
		Kind:     kind,
		TargetID: targetID,
		IssuedAt: time.UnixMilli(millis).UTC(),
	}, nil
}
