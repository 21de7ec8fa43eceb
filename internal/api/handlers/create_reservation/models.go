package create_reservation

import (
	"time"

	createReservation "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ListingID       int64   `json:"listingId"`
	StartTime       string  `json:"startTime"` // RFC 3339
	EndTime         string  `json:"endTime"`   // RFC 3339
	GuestCount      int     `json:"guestCount"`
	BookingType     string  `json:"bookingType,omitempty"` // "hourly" | "daily"
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	ListingID          int64   `json:"listingId"`
	GuestID            int64   `json:"guestId"`
	VenueType          string  `json:"venueType"`
	BookingType        string  `json:"bookingType"`
	Source             string  `json:"source"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
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
	CreatedAt          string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(guestID int64) (*createReservation.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		GuestID:         guestID,
		ListingID:       r.ListingID,
		StartTime:       startTime,
		EndTime:         endTime,
		GuestCount:      r.GuestCount,
		BookingType:     r.BookingType,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                 resp.ID,
		ListingID:          resp.ListingID,
		GuestID:            resp.GuestID,
		VenueType:          resp.VenueType,
		BookingType:        resp.BookingType,
		Source:             resp.Source,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		GuestCount:         resp.GuestCount,
		UnitPrice:          resp.UnitPrice,
		UnitCount:          resp.UnitCount,
		TotalPrice:         resp.TotalPrice,
		DiscountAmount:     resp.DiscountAmount,
		FinalPrice:         resp.FinalPrice,
		Currency:           resp.Currency,
		Status:             resp.Status,
		ConfirmationNumber: resp.ConfirmationNumber,
		SpecialRequests:    resp.SpecialRequests,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
}
