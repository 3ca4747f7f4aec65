package domain

import "errors"

// Ошибки-сентинелы ядра. Use case возвращает их (при необходимости обернув
// через %w с деталями), REST-адаптер маппит на HTTP-статусы.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrRequestNotFound      = errors.New("property request not found")
	ErrRoomRequestNotFound  = errors.New("room request not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrUnauthorized - действие выполняет не владелец сущности (или не та роль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict - нарушение инварианта "одна активная заявка".
	ErrConflict = errors.New("conflict")

	// ErrPolicyViolation - бизнес-правило: лимит бесплатного тарифа,
	// неистекшая блокировка после аренды, неверифицированный аккаунт.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrInvalid - некорректное значение enum или отсутствующее обязательное поле.
	ErrInvalid = errors.New("invalid value")

	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid jwt token")
)
