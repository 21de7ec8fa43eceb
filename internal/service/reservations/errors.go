package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("venue not found")

	// ErrAccessDenied возвращается, когда актор не гость бронирования и не владелец площадки
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidStatusTransition возвращается при недопустимом переходе статуса
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrReviewNotAllowed возвращается при попытке оставить отзыв на незавершённое бронирование
	ErrReviewNotAllowed = errors.New("review allowed only for completed reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
