package models

import (
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
)

// Request модели

// UpdateCalendarEntry одна правка календаря на конкретную дату
type UpdateCalendarEntry struct {
	Date        string   `json:"date"` // "2025-07-15"
	IsAvailable bool     `json:"isAvailable"`
	CustomPrice *float64 `json:"customPrice,omitempty"` // nil = базовая цена площадки за день
	HourlyPrice *float64 `json:"hourlyPrice,omitempty"`
	Note        *string  `json:"note,omitempty"`
}

// UpdateCalendarRequest запрос на пакетное обновление календаря
type UpdateCalendarRequest struct {
	UserID  int64                 `json:"userId"`
	Entries []UpdateCalendarEntry `json:"entries"`
}

// Response модели

// CalendarDayResponse сводка по одному дню месяца
type CalendarDayResponse struct {
	Date             string   `json:"date"` // "2025-07-15"
	IsAvailable      bool     `json:"isAvailable"`
	ReservationCount int      `json:"reservationCount"`
	GuestsBooked     int      `json:"guestsBooked"`
	CustomPrice      *float64 `json:"customPrice,omitempty"`
}

// CalendarResponse календарь площадки за месяц
type CalendarResponse struct {
	ListingID int64                 `json:"listingId"`
	Month     int                   `json:"month"`
	Year      int                   `json:"year"`
	Days      []CalendarDayResponse `json:"days"`
}

// Методы конвертации

// FromDomainCalendarDays конвертирует дни месяца в response
func FromDomainCalendarDays(listingID int64, month, year int, days []domain.CalendarDay) *CalendarResponse {
	resp := &CalendarResponse{
		ListingID: listingID,
		Month:     month,
		Year:      year,
		Days:      make([]CalendarDayResponse, 0, len(days)),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, CalendarDayResponse{
			Date:             day.Date.Format(domain.DateFormat),
			IsAvailable:      day.IsAvailable,
			ReservationCount: day.ReservationCount,
			GuestsBooked:     day.GuestsBooked,
			CustomPrice:      day.CustomPrice,
		})
	}
	return resp
}

// ParseEntryDate парсит дату правки календаря
func ParseEntryDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, time.UTC)
}
