package create_reservation

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_reservation: venue not found")

	// ErrVenueNotAccepting возвращается, когда площадка неактивна или не в статусе active
	ErrVenueNotAccepting = errors.New("create_reservation: venue is not accepting reservations")

	// ErrGuestCountExceeded возвращается, когда число гостей превышает вместимость площадки
	ErrGuestCountExceeded = errors.New("create_reservation: guest count exceeds venue capacity")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("create_reservation: end time must be after start time")

	// ErrStartTimeInPast возвращается, когда начало бронирования в прошлом
	ErrStartTimeInPast = errors.New("create_reservation: start time is in the past")

	// ErrDatesAlreadyBooked возвращается, когда интервал пересекается с существующим бронированием
	ErrDatesAlreadyBooked = errors.New("create_reservation: dates already booked")

	// ErrDateUnavailable возвращается, когда оператор закрыл одну из дат интервала
	ErrDateUnavailable = errors.New("create_reservation: date is blocked in the listing calendar")

	// ErrBookingTypeMismatch возвращается, когда запрошенный тип тарификации
	// не совпадает с рассчитанным по типу площадки и длительности
	ErrBookingTypeMismatch = errors.New("create_reservation: booking type does not match venue billing rules")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
