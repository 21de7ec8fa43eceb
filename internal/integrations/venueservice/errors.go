package venueservice

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("venueservice client: venue not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("venueservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("venueservice client: invalid response")
)
