package create_manual_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActingUserID <= 0 {
		return fmt.Errorf("%w: actingUserID must be positive", ErrInvalidInput)
	}

	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.GuestName) == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}

	if len(req.GuestName) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.GuestPhone) == "" {
		return fmt.Errorf("%w: guest phone is required", ErrInvalidInput)
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be at least %d", ErrInvalidInput, domain.MinGuestCount)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// Онлайн-источник резервируется за публичным сценарием
	if req.Source != string(domain.SourcePhone) && req.Source != string(domain.SourceWalkIn) {
		return fmt.Errorf("%w: source must be %q or %q", ErrInvalidInput,
			domain.SourcePhone, domain.SourceWalkIn)
	}

	if req.DiscountAmount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidDiscount)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: special requests are too long", ErrInvalidInput)
	}

	return nil
}

// validateWindow проверяет временной интервал с тем же grace-окном,
// что и у онлайн-бронирований
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
