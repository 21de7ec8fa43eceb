package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusRejected   ReservationStatus = "rejected"
	StatusNoShow     ReservationStatus = "no_show"
)

// VenueType represents the kind of bookable unit
type VenueType string

const (
	VenueBeach   VenueType = "beach"
	VenuePool    VenueType = "pool"
	VenueYacht   VenueType = "yacht"
	VenueDayTrip VenueType = "day_trip"
)

// BookingType represents how the reservation is billed
type BookingType string

const (
	BookingHourly BookingType = "hourly"
	BookingDaily  BookingType = "daily"
)

// ReservationSource represents the channel the reservation came through
type ReservationSource string

const (
	SourceOnline ReservationSource = "online"
	SourcePhone  ReservationSource = "phone"
	SourceWalkIn ReservationSource = "walk_in"
)

// Reservation represents a time-slot reservation on a listing.
// The [StartTime, EndTime) window is half-open: touching windows do not conflict.
type Reservation struct {
	ID        int64
	ListingID int64
	GuestID   int64

	VenueType   VenueType
	BookingType BookingType
	Source      ReservationSource

	StartTime  time.Time
	EndTime    time.Time
	GuestCount int

	UnitPrice      float64
	UnitCount      int
	TotalPrice     float64
	DiscountAmount float64
	FinalPrice     float64
	Currency       string

	Status             ReservationStatus
	ConfirmationNumber string
	SpecialRequests    *string
	CancellationReason *string

	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CheckedInAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the reservation still blocks its time window.
// Cancelled and rejected reservations release the slot.
func (r *Reservation) OccupiesSlot() bool {
	return r.Status != StatusCancelled && r.Status != StatusRejected
}

// IsTerminal returns true if no further status transition is allowed
func (r *Reservation) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeReviewed returns true if the guest may leave a review for this reservation
func (r *Reservation) CanBeReviewed() bool {
	return r.Status == StatusCompleted
}

// Overlaps reports whether the reservation window intersects [start, end)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndTime) && end.After(r.StartTime)
}

// ListingReservationsFilter фильтр для получения бронирований площадки
type ListingReservationsFilter struct {
	ListingID       int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeReleased bool               // Включать ли отменённые и отклонённые бронирования
}
