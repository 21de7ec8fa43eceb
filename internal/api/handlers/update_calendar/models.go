package update_calendar

import (
	"github.com/kaancelik05/swimago-api-sub000/internal/service/calendar/models"
)

// UpdateCalendarRequest HTTP request model
type UpdateCalendarRequest struct {
	Entries []models.UpdateCalendarEntry `json:"entries"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateCalendarRequest) ToServiceRequest(userID int64) *models.UpdateCalendarRequest {
	return &models.UpdateCalendarRequest{
		UserID:  userID,
		Entries: r.Entries,
	}
}
