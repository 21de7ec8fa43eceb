package calendar

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("venue not found")

	// ErrAccessDenied возвращается, когда актор не владелец площадки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidMonth возвращается при некорректном месяце или годе
	ErrInvalidMonth = errors.New("invalid month or year")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar service: internal error")
)
