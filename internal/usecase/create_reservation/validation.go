package create_reservation

import (
	"fmt"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}

	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be at least %d", ErrInvalidInput, domain.MinGuestCount)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if req.BookingType != "" &&
		req.BookingType != string(domain.BookingHourly) &&
		req.BookingType != string(domain.BookingDaily) {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: special requests are too long", ErrInvalidInput)
	}

	return nil
}

// validateVenueAccepting проверяет, что площадка принимает бронирования
func validateVenueAccepting(venue *venueservice.Venue) error {
	if !venue.IsActive || venue.Status != domain.VenueStatusActive {
		return ErrVenueNotAccepting
	}
	return nil
}

// validateGuestCount проверяет, что число гостей не превышает вместимость
func validateGuestCount(venue *venueservice.Venue, guestCount int) error {
	if guestCount > venue.MaxGuestCount {
		return fmt.Errorf("%w: %d > %d", ErrGuestCountExceeded, guestCount, venue.MaxGuestCount)
	}
	return nil
}

// validateWindow проверяет временной интервал.
// Начало может отставать от текущего момента не более чем на grace-окно:
// гость, заполнявший форму несколько минут, не получает отказ.
func validateWindow(start, end, now time.Time, graceMinutes int) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}

	grace := time.Duration(graceMinutes) * time.Minute
	if start.Before(now.Add(-grace)) {
		return ErrStartTimeInPast
	}

	return nil
}

// blockedDate возвращает первую дату интервала, закрытую оператором в календаре
func blockedDate(overrides map[time.Time]*domain.DailyOverride, start, end time.Time) (time.Time, bool) {
	for _, day := range domain.DaysCovered(start, end) {
		if override, ok := overrides[day]; ok && !override.IsAvailable {
			return day, true
		}
	}
	return time.Time{}, false
}

// overridesByDay индексирует переопределения по UTC-дате
func overridesByDay(overrides []*domain.DailyOverride) map[time.Time]*domain.DailyOverride {
	indexed := make(map[time.Time]*domain.DailyOverride, len(overrides))
	for _, override := range overrides {
		indexed[domain.DayKey(override.Date)] = override
	}
	return indexed
}
