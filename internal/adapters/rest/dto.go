package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

// --- Auth ---

type RegisterRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phone_number"`
	Role               string    `json:"role"`
	VerificationStatus string    `json:"verification_status"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		FullName:           u.FullName,
		Email:              u.Email,
		PhoneNumber:        u.PhoneNumber,
		Role:               string(u.Role),
		VerificationStatus: string(u.VerificationStatus),
		SubscriptionStatus: string(u.SubscriptionStatus),
		CreatedAt:          u.CreatedAt,
	}
}

// --- Properties ---

type PropertyPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	District    string   `json:"district"`
	Province    string   `json:"province"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Price       int64    `json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        float64  `json:"area"`
	Type        string   `json:"type"`
}

type PropertyStatusPayload struct {
	Status string `json:"status"`
}

type PropertyResponse struct {
	ID          uuid.UUID  `json:"id"`
	LandlordID  uuid.UUID  `json:"landlord_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	District    string     `json:"district"`
	Province    string     `json:"province"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Price       int64      `json:"price"`
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Area        float64    `json:"area"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Verified    bool       `json:"verified"`
	RentedAt    *time.Time `json:"rented_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		LandlordID:  p.LandlordID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		City:        p.City,
		District:    p.District,
		Province:    p.Province,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Verified:    p.Verified,
		RentedAt:    p.RentedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPropertyResponses(items []*domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(items))
	for i, p := range items {
		out[i] = toPropertyResponse(p)
	}
	return out
}

// --- Property requests ---

type CreateRequestPayload struct {
	Message string `json:"message"`
}

type RequestStatusPayload struct {
	Status string `json:"status"`
}

type RequestResponse struct {
	ID         uuid.UUID `json:"id"`
	SeekerID   uuid.UUID `json:"seeker_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toRequestResponse(r *domain.PropertyRequest) RequestResponse {
	return RequestResponse{
		ID:         r.ID,
		SeekerID:   r.SeekerID,
		PropertyID: r.PropertyID,
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toRequestResponses(items []*domain.PropertyRequest) []RequestResponse {
	out := make([]RequestResponse, len(items))
	for i, r := range items {
		out[i] = toRequestResponse(r)
	}
	return out
}

// --- Room requests ---

type RoomRequestPayload struct {
	City        string  `json:"city"`
	District    string  `json:"district"`
	MinPrice    *int64  `json:"min_price,omitempty"`
	MaxPrice    *int64  `json:"max_price,omitempty"`
	MinBedrooms *int    `json:"min_bedrooms,omitempty"`
	MaxBedrooms *int    `json:"max_bedrooms,omitempty"`
	Type        *string `json:"type,omitempty"`
	Notes       string  `json:"notes"`
	Active      *bool   `json:"active,omitempty"` // учитывается только при обновлении
}

type RoomRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	SeekerID    uuid.UUID `json:"seeker_id"`
	City        string    `json:"city"`
	District    string    `json:"district"`
	MinPrice    *int64    `json:"min_price,omitempty"`
	MaxPrice    *int64    `json:"max_price,omitempty"`
	MinBedrooms *int      `json:"min_bedrooms,omitempty"`
	MaxBedrooms *int      `json:"max_bedrooms,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Notes       string    `json:"notes"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRoomRequestResponse(r *domain.RoomRequest) RoomRequestResponse {
	var propertyType *string
	if r.Type != nil {
		t := string(*r.Type)
		propertyType = &t
	}
	return RoomRequestResponse{
		ID:          r.ID,
		SeekerID:    r.SeekerID,
		City:        r.City,
		District:    r.District,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		MinBedrooms: r.MinBedrooms,
		MaxBedrooms: r.MaxBedrooms,
		Type:        propertyType,
		Notes:       r.Notes,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRoomRequestResponses(items []*domain.RoomRequest) []RoomRequestResponse {
	out := make([]RoomRequestResponse, len(items))
	for i, r := range items {
		out[i] = toRoomRequestResponse(r)
	}
	return out
}

// --- Availability subscriptions ---

type SubscribePayload struct {
	City     string `json:"city"`
	District string `json:"district"`
}

type SubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	SeekerID  uuid.UUID `json:"seeker_id"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toSubscriptionResponse(s *domain.AvailabilitySubscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		SeekerID:  s.SeekerID,
		City:      s.City,
		District:  s.District,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

// --- Payments ---

type InitiateEsewaPayload struct {
	Kind     string    `json:"kind"`   // BOOKING | SUBSCRIPTION
	Amount   int64     `json:"amount"` // NPR
	TargetID uuid.UUID `json:"target_id"`
}

type CardPaymentPayload struct {
	CardNumber string    `json:"card_number"`
	Kind       string    `json:"kind"`
	Amount     int64     `json:"amount"`
	TargetID   uuid.UUID `json:"target_id"`
}

type CardPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type EsewaCallbackResponse struct {
	Kind     string    `json:"kind"`
	TargetID uuid.UUID `json:"target_id"`
	Status   string    `json:"status"`
}

// --- Admin ---

type VerificationReviewPayload struct {
	Approve bool `json:"approve"`
}

// --- Misc ---

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}
