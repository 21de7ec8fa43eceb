package check_availability

import (
	"context"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	HasOverlap(ctx context.Context, listingID int64, start, end time.Time, excludeID *int64) (bool, error)
}

// OverrideRepository интерфейс репозитория календарных переопределений
type OverrideRepository interface {
	GetByListingAndPeriod(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.DailyOverride, error)
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
