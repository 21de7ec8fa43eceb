package get_calendar

import (
	"context"

	"github.com/kaancelik05/swimago-api-sub000/internal/service/calendar/models"
)

type CalendarService interface {
	GetCalendar(ctx context.Context, listingID int64, month, year int) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
