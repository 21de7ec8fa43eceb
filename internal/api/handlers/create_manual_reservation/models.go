package create_manual_reservation

import (
	"time"

	createManualReservation "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_manual_reservation"
)

// CreateManualReservationRequest HTTP request model
type CreateManualReservationRequest struct {
	GuestName       string  `json:"guestName"`
	GuestPhone      string  `json:"guestPhone"`
	StartTime       string  `json:"startTime"` // RFC 3339
	EndTime         string  `json:"endTime"`   // RFC 3339
	GuestCount      int     `json:"guestCount"`
	Source          string  `json:"source"` // "phone" | "walk_in"
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// ManualReservationResponse HTTP response model
type ManualReservationResponse struct {
	ID                 int64   `json:"id"`
	ListingID          int64   `json:"listingId"`
	GuestID            int64   `json:"guestId"`
	GuestName          string  `json:"guestName"`
	GuestPhone         string  `json:"guestPhone"`
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
func (r *CreateManualReservationRequest) ToUseCaseRequest(actingUserID, listingID int64) (*createManualReservation.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createManualReservation.Request{
		ActingUserID:    actingUserID,
		ListingID:       listingID,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		StartTime:       startTime,
		EndTime:         endTime,
		GuestCount:      r.GuestCount,
		Source:          r.Source,
		DiscountAmount:  r.DiscountAmount,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createManualReservation.Response) *ManualReservationResponse {
	return &ManualReservationResponse{
		ID:                 resp.ID,
		ListingID:          resp.ListingID,
		GuestID:            resp.GuestID,
		GuestName:          resp.GuestName,
		GuestPhone:         resp.GuestPhone,
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
