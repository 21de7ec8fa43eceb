package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	venueClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/calendar/models"
)

// Service сервис календаря оператора: месячная сводка доступности
// и пакетное управление переопределениями цены/доступности по датам
type Service struct {
	overrideRepo    OverrideRepository
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	overrideRepo OverrideRepository,
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		overrideRepo:    overrideRepo,
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		logger:          logger,
	}
}

// GetCalendar строит сводку по каждому дню месяца:
// доступность (переопределение, иначе заполненность по вместимости),
// число активных бронирований, кастомная цена
func (s *Service) GetCalendar(ctx context.Context, listingID int64, month, year int) (*models.CalendarResponse, error) {
	s.logger.Info("GetCalendar: listing=%d, month=%d, year=%d", listingID, month, year)

	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return nil, fmt.Errorf("%w: month=%d year=%d", ErrInvalidMonth, month, year)
	}

	venue, err := s.getVenue(ctx, "GetCalendar", listingID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	overrides, err := s.overrideRepo.GetByListingAndPeriod(ctx, listingID, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("GetCalendar: failed to get overrides for listing=%d: %v", listingID, err)
		return nil, fmt.Errorf("%w: GetCalendar - overrides: %v", ErrInternal, err)
	}

	overridesByDay := make(map[time.Time]*domain.DailyOverride, len(overrides))
	for _, override := range overrides {
		overridesByDay[domain.DayKey(override.Date)] = override
	}

	reservations, err := s.reservationRepo.GetByListingWithFilter(ctx, domain.ListingReservationsFilter{
		ListingID: listingID,
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		s.logger.Error("GetCalendar: failed to get reservations for listing=%d: %v", listingID, err)
		return nil, fmt.Errorf("%w: GetCalendar - reservations: %v", ErrInternal, err)
	}

	days := make([]domain.CalendarDay, 0, 31)
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1)

		count := 0
		guestsBooked := 0
		for _, res := range reservations {
			if res.Overlaps(day, dayEnd) {
				count++
				guestsBooked += res.GuestCount
			}
		}

		calendarDay := domain.CalendarDay{
			Date:             day,
			ReservationCount: count,
			GuestsBooked:     guestsBooked,
		}

		if override, ok := overridesByDay[day]; ok {
			calendarDay.IsAvailable = override.IsAvailable
			calendarDay.CustomPrice = &override.Price
		} else {
			calendarDay.IsAvailable = guestsBooked < venue.MaxGuestCount
		}

		days = append(days, calendarDay)
	}

	return models.FromDomainCalendarDays(listingID, month, year, days), nil
}

// UpdateCalendar пакетно применяет правки календаря площадки.
// Доступно только владельцу. Правка без цены получает базовую дневную цену
// площадки. Семантика last-writer-wins между конкурентными правками.
func (s *Service) UpdateCalendar(ctx context.Context, listingID int64, req *models.UpdateCalendarRequest) error {
	s.logger.Info("UpdateCalendar: listing=%d, user=%d, entries=%d", listingID, req.UserID, len(req.Entries))

	if len(req.Entries) == 0 {
		return fmt.Errorf("%w: entries are required", ErrInvalidInput)
	}

	venue, err := s.getVenue(ctx, "UpdateCalendar", listingID)
	if err != nil {
		return err
	}

	if venue.OwnerID != req.UserID {
		s.logger.Warn("UpdateCalendar: user=%d is not the owner of venue=%d", req.UserID, listingID)
		return ErrAccessDenied
	}

	for _, entry := range req.Entries {
		date, err := models.ParseEntryDate(entry.Date)
		if err != nil {
			s.logger.Warn("UpdateCalendar: invalid date %q for listing=%d", entry.Date, listingID)
			return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, entry.Date)
		}

		if entry.Note != nil && len(*entry.Note) > domain.MaxCalendarNoteLength {
			return fmt.Errorf("%w: note is too long", ErrInvalidInput)
		}

		price := venue.BasePricePerDay
		if entry.CustomPrice != nil {
			price = *entry.CustomPrice
		}
		if price < 0 {
			return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
		}

		override := &domain.DailyOverride{
			ListingID:   listingID,
			Date:        domain.DayKey(date),
			Price:       price,
			HourlyPrice: entry.HourlyPrice,
			IsAvailable: entry.IsAvailable,
			Note:        entry.Note,
		}

		if _, err := s.overrideRepo.Upsert(ctx, override); err != nil {
			s.logger.Error("UpdateCalendar: upsert failed for listing=%d date=%s: %v", listingID, entry.Date, err)
			return fmt.Errorf("%w: UpdateCalendar - upsert: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateCalendar: applied %d entries for listing=%d", len(req.Entries), listingID)
	return nil
}

func (s *Service) getVenue(ctx context.Context, op string, listingID int64) (*venueClient.Venue, error) {
	venue, err := s.venueClient.GetVenue(ctx, listingID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, listingID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: failed to get venue id=%d: %v", op, listingID, err)
		return nil, fmt.Errorf("%w: %s - failed to get venue: %v", ErrInternal, op, err)
	}
	return venue, nil
}
