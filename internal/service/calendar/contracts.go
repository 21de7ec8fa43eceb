package calendar

import (
	"context"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// OverrideRepository интерфейс репозитория календарных переопределений
type OverrideRepository interface {
	Upsert(ctx context.Context, override *domain.DailyOverride) (*domain.DailyOverride, error)
	GetByListingAndPeriod(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.DailyOverride, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByListingWithFilter(ctx context.Context, filter domain.ListingReservationsFilter) ([]*domain.Reservation, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, listingID int64) (*venueservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
