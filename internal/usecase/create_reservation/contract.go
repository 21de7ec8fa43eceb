package create_reservation

import (
	"context"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/pricing"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
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

// PriceCalculator интерфейс калькулятора стоимости
type PriceCalculator interface {
	Calculate(venue *venueservice.Venue, start, end time.Time, guestCount int, overrides map[time.Time]*domain.DailyOverride) (*pricing.Quote, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
