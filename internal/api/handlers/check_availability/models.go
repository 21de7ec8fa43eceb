package check_availability

import (
	"time"

	checkAvailability "github.com/kaancelik05/swimago-api-sub000/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ListingID int64  `json:"listingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // "booked" | "blocked"
}

// ToUseCaseRequest парсит query параметры в модель use case
func ToUseCaseRequest(listingID int64, startStr, endStr string) (*checkAvailability.Request, error) {
	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		ListingID: listingID,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ListingID: resp.ListingID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		Available: resp.Available,
		Reason:    resp.Reason,
	}
}
