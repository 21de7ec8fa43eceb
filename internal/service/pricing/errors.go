package pricing

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("pricing: end time must be after start time")

	// ErrUnknownVenueType возвращается при неизвестном типе площадки
	ErrUnknownVenueType = errors.New("pricing: unknown venue type")

	// ErrUnknownPolicy возвращается при неизвестной политике тарификации
	ErrUnknownPolicy = errors.New("pricing: unknown pricing policy")
)
