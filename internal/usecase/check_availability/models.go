package check_availability

import "time"

// Request модель запроса проверки доступности интервала
type Request struct {
	ListingID int64     // ID площадки
	StartTime time.Time // Начало интервала (UTC)
	EndTime   time.Time // Конец интервала (UTC)
}

// Response результат проверки. Available - итоговый вердикт,
// Reason поясняет отказ: "booked" или "blocked".
type Response struct {
	ListingID int64
	StartTime time.Time
	EndTime   time.Time
	Available bool
	Reason    string
}

// Причины недоступности интервала
const (
	ReasonBooked  = "booked"  // интервал пересекается с активным бронированием
	ReasonBlocked = "blocked" // одна из дат закрыта оператором в календаре
)
