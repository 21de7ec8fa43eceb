package get_listing_reservations

import (
	"strconv"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations/models"
)

// ToServiceRequest парсит query параметры в модель сервиса
func ToServiceRequest(listingID, userID int64, startDateStr, endDateStr, statusStr, includeReleasedStr string) (*models.GetListingReservationsRequest, error) {
	req := &models.GetListingReservationsRequest{
		UserID:    userID,
		ListingID: listingID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		// Конец периода - эксклюзивная граница следующего дня
		endExclusive := endDate.AddDate(0, 0, 1)
		req.EndDate = &endExclusive
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeReleasedStr != "" {
		includeReleased, err := strconv.ParseBool(includeReleasedStr)
		if err != nil {
			return nil, err
		}
		req.IncludeReleased = includeReleased
	}

	return req, nil
}
