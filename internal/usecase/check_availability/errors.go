package check_availability

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("check_availability: venue not found")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("check_availability: end time must be after start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
