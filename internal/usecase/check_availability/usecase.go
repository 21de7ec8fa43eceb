package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	venueClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// UseCase use case проверки доступности интервала.
// Ответ носит информационный характер: без блокировок он может устареть
// к моменту бронирования, финальную проверку делает create_reservation
// внутри сериализуемой транзакции.
type UseCase struct {
	reservationRepo ReservationRepository
	overrideRepo    OverrideRepository
	venueClient     VenueServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	overrideRepo OverrideRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		overrideRepo:    overrideRepo,
		venueClient:     venueClient,
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ListingID <= 0 {
		return nil, fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	// 2. Площадка должна существовать
	if _, err := uc.venueClient.GetVenue(ctx, req.ListingID); err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get venue id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	resp := &Response{
		ListingID: req.ListingID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Available: true,
	}

	// 3. Закрытые оператором даты
	overrides, err := uc.overrideRepo.GetByListingAndPeriod(ctx, req.ListingID, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get calendar overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar overrides: %v", ErrInternal, err)
	}

	blocked := make(map[string]bool, len(overrides))
	for _, override := range overrides {
		if !override.IsAvailable {
			blocked[domain.DayKey(override.Date).Format(domain.DateFormat)] = true
		}
	}
	for _, day := range domain.DaysCovered(req.StartTime, req.EndTime) {
		if blocked[day.Format(domain.DateFormat)] {
			resp.Available = false
			resp.Reason = ReasonBlocked
			return resp, nil
		}
	}

	// 4. Пересечения с активными бронированиями
	hasOverlap, err := uc.reservationRepo.HasOverlap(ctx, req.ListingID, req.StartTime, req.EndTime, nil)
	if err != nil {
		uc.logger.Error("CheckAvailability: overlap check failed: %v", err)
		return nil, fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
	}
	if hasOverlap {
		resp.Available = false
		resp.Reason = ReasonBooked
	}

	return resp, nil
}
