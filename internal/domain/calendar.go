package domain

import "time"

// DailyOverride represents a per-date exception to a listing's default
// price and availability. Unique per (ListingID, Date), date has day precision.
type DailyOverride struct {
	ID          int64
	ListingID   int64
	Date        time.Time
	Price       float64
	HourlyPrice *float64
	IsAvailable bool
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CalendarDay is one day of the operator's month view
type CalendarDay struct {
	Date             time.Time
	IsAvailable      bool
	ReservationCount int
	GuestsBooked     int
	CustomPrice      *float64
}

// DayKey normalizes a timestamp to its UTC calendar day.
// Used as the map key when matching overrides to reservation days.
func DayKey(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysCovered returns every UTC calendar day touched by the half-open window [start, end)
func DaysCovered(start, end time.Time) []time.Time {
	days := make([]time.Time, 0, 4)
	for d := DayKey(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
