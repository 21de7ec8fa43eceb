package create_manual_reservation

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_manual_reservation: venue not found")

	// ErrAccessDenied возвращается, когда актор не владелец площадки
	ErrAccessDenied = errors.New("create_manual_reservation: access denied")

	// ErrVenueNotAccepting возвращается, когда площадка не принимает бронирования
	ErrVenueNotAccepting = errors.New("create_manual_reservation: venue is not accepting reservations")

	// ErrGuestCountExceeded возвращается, когда число гостей превышает вместимость
	ErrGuestCountExceeded = errors.New("create_manual_reservation: guest count exceeds venue capacity")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("create_manual_reservation: end time must be after start time")

	// ErrStartTimeInPast возвращается, когда начало бронирования в прошлом
	ErrStartTimeInPast = errors.New("create_manual_reservation: start time is in the past")

	// ErrDatesAlreadyBooked возвращается, когда интервал уже занят
	ErrDatesAlreadyBooked = errors.New("create_manual_reservation: dates already booked")

	// ErrDateUnavailable возвращается, когда оператор закрыл одну из дат интервала
	ErrDateUnavailable = errors.New("create_manual_reservation: date is blocked in the listing calendar")

	// ErrInvalidPhone возвращается, когда GuestService отклонил номер телефона
	ErrInvalidPhone = errors.New("create_manual_reservation: invalid guest phone number")

	// ErrInvalidDiscount возвращается, когда скидка отрицательна или больше стоимости
	ErrInvalidDiscount = errors.New("create_manual_reservation: invalid discount amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_manual_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_manual_reservation: internal error")
)
