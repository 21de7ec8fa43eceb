package guestservice

// Guest лёгкая гостевая учётка из GuestService.
// Для ручных бронирований (телефон, walk-in) создаётся лениво по номеру телефона.
type Guest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// findOrCreateRequest тело запроса на поиск/создание гостя
type findOrCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ErrorResponse модель ошибки от GuestService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
