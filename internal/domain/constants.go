package domain

// Default configuration values
const (
	DefaultBookingGraceMinutes     = 15 // how far in the past a start time may lie
	DefaultConfirmationInsertTries = 3
	DefaultGuestCountMultiplier    = 1.0
	DefaultCancellationWindowHours = 0 // 0 = cancellable until the reservation starts
)

// Business validation constants
const (
	MinGuestCount               = 1
	MaxGuestNameLength          = 255
	MaxSpecialRequestsLength    = 1000
	MaxCancellationReasonLength = 500
	MaxCalendarNoteLength       = 500
	HoursPerBillableDay         = 24
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// VenueStatusActive значение статуса площадки в каталоге, при котором разрешены бронирования
const VenueStatusActive = "active"
