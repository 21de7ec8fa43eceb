package create_manual_reservation

import (
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
)

// Request модель запроса на ручное бронирование от имени оператора.
// Гость идентифицируется именем и телефоном; учётка создаётся лениво.
type Request struct {
	ActingUserID    int64     // ID оператора (владельца площадки)
	ListingID       int64     // ID площадки
	GuestName       string    // Имя гостя
	GuestPhone      string    // Телефон гостя
	StartTime       time.Time // Начало интервала (UTC)
	EndTime         time.Time // Конец интервала (UTC)
	GuestCount      int       // Число гостей
	Source          string    // "phone" | "walk_in"; онлайн-источник запрещён
	DiscountAmount  float64   // Скидка оператора (0 = без скидки)
	SpecialRequests *string   // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64
	ListingID          int64
	GuestID            int64
	GuestName          string
	GuestPhone         string
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

func fromDomain(res *domain.Reservation, guestName, guestPhone string) *Response {
	return &Response{
		ID:                 res.ID,
		ListingID:          res.ListingID,
		GuestID:            res.GuestID,
		GuestName:          guestName,
		GuestPhone:         guestPhone,
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
