package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleLandlord Role = "landlord"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSeeker, RoleLandlord, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalid, s)
}

// VerificationStatus - статус проверки аккаунта админом.
// Неверифицированный seeker не может отправлять заявки,
// неверифицированный landlord - публиковать объекты.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

// User - основная доменная сущность аккаунта.
type User struct {
	ID                 uuid.UUID
	FullName           string
	Email              string
	PasswordHash       string
	PhoneNumber        string
	Role               Role
	VerificationStatus VerificationStatus
	SubscriptionStatus SubscriptionStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Claims - данные, которые "зашиваются" в JWT токен.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// NewUser создает нового пользователя. Хэширование пароля происходит здесь.
func NewUser(fullName, email, password, phone string, role Role, now time.Time) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalid)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:                 uuid.New(),
		FullName:           fullName,
		Email:              email,
		PasswordHash:       string(hashedPassword),
		PhoneNumber:        phone,
		Role:               role,
		VerificationStatus: VerificationPending,
		SubscriptionStatus: SubscriptionFree,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}, nil
}

// CheckPassword сравнивает предоставленный пароль с хэшем пользователя.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func (u *User) IsVerified() bool {
	return u.VerificationStatus == VerificationVerified
}
