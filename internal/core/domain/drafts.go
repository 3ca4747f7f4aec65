package domain

// Черновики - входные данные use case-ов, еще не ставшие сущностями.

type RegisterDraft struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	Role        Role
}

type PropertyDraft struct {
	Title       string
	Description string
	Address     string
	City        string
	District    string
	Province    string
	Latitude    *float64
	Longitude   *float64
	Price       int64
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Type        PropertyType
}

type RoomRequestDraft struct {
	City        string
	District    string
	MinPrice    *int64
	MaxPrice    *int64
	MinBedrooms *int
	MaxBedrooms *int
	Type        *PropertyType
	Notes       string
}

// PaymentOrder - намерение оплаты до похода в шлюз.
type PaymentOrder struct {
	Kind   TransactionKind
	Amount int64 // NPR
}
