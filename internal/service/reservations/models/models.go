package models

import (
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetGuestReservationsRequest запрос на получение бронирований гостя
type GetGuestReservationsRequest struct {
	GuestID int64   `json:"guestId"`
	Status  *string `json:"status,omitempty"`
}

// GetListingReservationsRequest запрос на получение бронирований площадки
type GetListingReservationsRequest struct {
	UserID          int64      `json:"userId"`
	ListingID       int64      `json:"listingId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeReleased bool       `json:"includeReleased,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetListingReservationsRequest) ToDomainFilter() (domain.ListingReservationsFilter, error) {
	filter := domain.ListingReservationsFilter{
		ListingID:       r.ListingID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeReleased: r.IncludeReleased,
	}

	if r.Status != nil {
		status, err := domain.ParseReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	ListingID          int64   `json:"listingId"`
	GuestID            int64   `json:"guestId"`
	VenueType          string  `json:"venueType"`
	BookingType        string  `json:"bookingType"`
	Source             string  `json:"source"`
	StartTime          string  `json:"startTime"` // RFC 3339
	EndTime            string  `json:"endTime"`   // RFC 3339
	GuestCount         int     `json:"guestCount"`
	UnitPrice          float64 `json:"unitPrice"`
	UnitCount          int     `json:"unitCount"`
	TotalPrice         float64 `json:"totalPrice"`
	DiscountAmount     float64 `json:"discountAmount"`
	FinalPrice         float64 `json:"finalPrice"`
	Currency           string  `json:"currency"`
	Status             string  `json:"status"`
	ConfirmationNumber string  `json:"confirmationNumber"`
	SpecialRequests    *string `json:"specialRequests,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CheckedInAt        *string `json:"checkedInAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 res.ID,
		ListingID:          res.ListingID,
		GuestID:            res.GuestID,
		VenueType:          string(res.VenueType),
		BookingType:        string(res.BookingType),
		Source:             string(res.Source),
		StartTime:          res.StartTime.Format(time.RFC3339),
		EndTime:            res.EndTime.Format(time.RFC3339),
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
		CancellationReason: res.CancellationReason,
		ConfirmedAt:        formatTimePtr(res.ConfirmedAt),
		CancelledAt:        formatTimePtr(res.CancelledAt),
		CheckedInAt:        formatTimePtr(res.CheckedInAt),
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          res.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, res := range reservations {
		result.Reservations = append(result.Reservations, *FromDomainReservation(res))
	}
	return result
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
