package guestservice

import "errors"

var (
	// ErrInvalidPhone возвращается, когда сервис отклонил номер телефона
	ErrInvalidPhone = errors.New("guestservice client: invalid phone number")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("guestservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("guestservice client: invalid response")
)
