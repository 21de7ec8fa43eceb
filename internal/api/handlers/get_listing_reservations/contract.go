package get_listing_reservations

import (
	"context"

	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	GetListingReservations(ctx context.Context, req *models.GetListingReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
