package venueservice

// Venue снапшот площадки из каталога.
// Каталог - источник истины по вместимости, базовым ценам и статусу.
type Venue struct {
	ID               int64        `json:"id"`
	OwnerID          int64        `json:"owner_id"`
	Type             string       `json:"type"` // beach, pool, yacht, day_trip
	MaxGuestCount    int          `json:"max_guest_count"`
	BasePricePerHour float64      `json:"base_price_per_hour"`
	BasePricePerDay  float64      `json:"base_price_per_day"`
	Currency         string       `json:"currency"`
	IsActive         bool         `json:"is_active"`
	Status           string       `json:"status"` // бронирования принимаются только при "active"
	HostSettings     HostSettings `json:"host_settings"`
}

// HostSettings настройки оператора площадки
type HostSettings struct {
	AutoConfirmManualBookings bool `json:"auto_confirm_manual_bookings"`
	CancellationWindowHours   int  `json:"cancellation_window_hours"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
