package create_reservation

import (
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
)

// Request модель запроса на создание бронирования (онлайн-сценарий)
type Request struct {
	GuestID         int64     // ID гостя
	ListingID       int64     // ID площадки
	StartTime       time.Time // Начало интервала (UTC)
	EndTime         time.Time // Конец интервала (UTC), полуоткрытый [start, end)
	GuestCount      int       // Число гостей
	BookingType     string    // "hourly" | "daily"; пустая строка = определить по правилам площадки
	SpecialRequests *string   // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64
	ListingID          int64
	GuestID            int64
	VenueType          string
	BookingType        string
	Source             string
	StartTime          time.Time
	EndTime            time.Time
	GuestCount         int
	UnitPrice          float64
	UnitCount          int
	TotalPrice         float64
	DiscountAmount     float64
	FinalPrice         float64
	Currency           string
	Status             string
	ConfirmationNumber string
	SpecialRequests    *string
	CreatedAt          time.Time
}

// fromDomain конвертирует созданное бронирование в response
func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:                 res.ID,
		ListingID:          res.ListingID,
		GuestID:            res.GuestID,
		VenueType:          string(res.VenueType),
		BookingType:        string(res.BookingType),
		Source:             string(res.Source),
		StartTime:          res.StartTime,
		EndTime:            res.EndTime,
		GuestCount:         res.GuestCount,
		UnitPrice:          res.UnitPrice,
		UnitCount:          res.UnitCount,
		TotalPrice:         res.TotalPrice,
		DiscountAmount:     res.DiscountAmount,
		FinalPrice:         res.FinalPrice,
		Currency:           res.Currency,
		Status:             string(res.Status),
		ConfirmationNumber: res.ConfirmationNumber,
		SpecialRequests:    res.SpecialRequests,
		CreatedAt:          res.CreatedAt,
	}
}
