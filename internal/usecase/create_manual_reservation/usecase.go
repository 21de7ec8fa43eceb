package create_manual_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	guestClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/guestservice"
	venueClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// UseCase use case для ручного бронирования (телефон, walk-in).
// От онлайн-сценария отличается проверкой владельца, ленивым созданием
// гостевой учётки, скидкой и автоподтверждением по настройке оператора.
type UseCase struct {
	reservationRepo ReservationRepository
	overrideRepo    OverrideRepository
	venueClient     VenueServiceClient
	guestResolver   GuestIdentityResolver
	calculator      PriceCalculator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger

	graceMinutes int
	insertTries  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	overrideRepo OverrideRepository,
	venueClient VenueServiceClient,
	guestResolver GuestIdentityResolver,
	calculator PriceCalculator,
	txManager TransactionManager,
	logger Logger,
	graceMinutes int,
	insertTries int,
) *UseCase {
	if graceMinutes <= 0 {
		graceMinutes = domain.DefaultBookingGraceMinutes
	}
	if insertTries <= 0 {
		insertTries = domain.DefaultConfirmationInsertTries
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		overrideRepo:    overrideRepo,
		venueClient:     venueClient,
		guestResolver:   guestResolver,
		calculator:      calculator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		graceMinutes:    graceMinutes,
		insertTries:     insertTries,
	}
}

// Execute выполняет use case ручного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateManualReservation: host=%d, listing=%d, phone=%s, source=%s",
		req.ActingUserID, req.ListingID, req.GuestPhone, req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateManualReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем снапшот площадки
	venue, err := uc.venueClient.GetVenue(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateManualReservation: venue id=%d not found", req.ListingID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateManualReservation: failed to get venue id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Ручные бронирования создаёт только владелец площадки
	if venue.OwnerID != req.ActingUserID {
		uc.logger.Warn("CreateManualReservation: user=%d is not the owner of venue=%d",
			req.ActingUserID, req.ListingID)
		return nil, ErrAccessDenied
	}

	// 5. Площадка принимает бронирования
	if !venue.IsActive || venue.Status != domain.VenueStatusActive {
		uc.logger.Warn("CreateManualReservation: venue id=%d is not accepting reservations", req.ListingID)
		return nil, ErrVenueNotAccepting
	}

	// 6. Вместимость
	if req.GuestCount > venue.MaxGuestCount {
		uc.logger.Warn("CreateManualReservation: guest count %d exceeds capacity of venue id=%d",
			req.GuestCount, req.ListingID)
		return nil, fmt.Errorf("%w: %d > %d", ErrGuestCountExceeded, req.GuestCount, venue.MaxGuestCount)
	}

	// 7. Временной интервал
	if err := validateWindow(req.StartTime, req.EndTime, now, uc.graceMinutes); err != nil {
		uc.logger.Warn("CreateManualReservation: window validation failed: %v", err)
		return nil, err
	}

	// 8. Разрешаем гостевую учётку по телефону (вне транзакции: HTTP-вызов)
	guest, err := uc.guestResolver.FindOrCreateByPhone(ctx, req.GuestName, req.GuestPhone)
	if err != nil {
		if errors.Is(err, guestClient.ErrInvalidPhone) {
			uc.logger.Warn("CreateManualReservation: invalid phone %s", req.GuestPhone)
			return nil, ErrInvalidPhone
		}
		uc.logger.Error("CreateManualReservation: failed to resolve guest: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve guest: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 9. Транзакционная часть: календарь, пересечения, цена, вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.reserve(txCtx, req, venue, guest.ID, now)
		if err != nil {
			return err
		}
		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateManualReservation: created reservation id=%d, status=%s, confirmation=%s",
		result.ID, result.Status, result.ConfirmationNumber)

	return fromDomain(result, guest.Name, guest.Phone), nil
}

func (uc *UseCase) reserve(txCtx context.Context, req *Request, venue *venueClient.Venue, guestID int64, now time.Time) (*domain.Reservation, error) {
	// Ошибки репозиториев внутри транзакции оборачиваем через %w:
	// txmanager различает serialization failure по цепочке ошибок
	overrides, err := uc.overrideRepo.GetByListingAndPeriod(txCtx, req.ListingID, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CreateManualReservation: failed to get calendar overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar overrides: %w", ErrInternal, err)
	}

	indexed := overridesByDay(overrides)
	if day, blocked := blockedDate(indexed, req.StartTime, req.EndTime); blocked {
		uc.logger.Warn("CreateManualReservation: date %s is blocked for listing=%d",
			day.Format(domain.DateFormat), req.ListingID)
		return nil, ErrDateUnavailable
	}

	hasOverlap, err := uc.reservationRepo.HasOverlap(txCtx, req.ListingID, req.StartTime, req.EndTime, nil)
	if err != nil {
		uc.logger.Error("CreateManualReservation: overlap check failed: %v", err)
		return nil, fmt.Errorf("%w: overlap check failed: %w", ErrInternal, err)
	}
	if hasOverlap {
		return nil, ErrDatesAlreadyBooked
	}

	quote, err := uc.calculator.Calculate(venue, req.StartTime, req.EndTime, req.GuestCount, indexed)
	if err != nil {
		uc.logger.Error("CreateManualReservation: price calculation failed: %v", err)
		return nil, fmt.Errorf("%w: price calculation failed: %v", ErrInternal, err)
	}

	if req.DiscountAmount > quote.TotalPrice {
		return nil, fmt.Errorf("%w: discount %.2f exceeds total %.2f",
			ErrInvalidDiscount, req.DiscountAmount, quote.TotalPrice)
	}

	venueType, err := domain.ParseVenueType(venue.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Автоподтверждение - настройка оператора из снапшота площадки
	status := domain.StatusPending
	var confirmedAt *time.Time
	if venue.HostSettings.AutoConfirmManualBookings {
		status = domain.StatusConfirmed
		stamp := now.UTC()
		confirmedAt = &stamp
	}

	reservation := &domain.Reservation{
		ListingID:       req.ListingID,
		GuestID:         guestID,
		VenueType:       venueType,
		BookingType:     quote.BookingType,
		Source:          domain.ReservationSource(req.Source),
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		GuestCount:      req.GuestCount,
		UnitPrice:       quote.UnitPrice,
		UnitCount:       quote.UnitCount,
		TotalPrice:      quote.TotalPrice,
		DiscountAmount:  req.DiscountAmount,
		FinalPrice:      quote.TotalPrice - req.DiscountAmount,
		Currency:        quote.Currency,
		Status:          status,
		ConfirmedAt:     confirmedAt,
		SpecialRequests: req.SpecialRequests,
	}

	var lastErr error
	for attempt := 0; attempt < uc.insertTries; attempt++ {
		reservation.ConfirmationNumber = domain.NewConfirmationNumber(now)

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err == nil {
			return created, nil
		}

		if errors.Is(err, reservationRepo.ErrWindowConflict) {
			return nil, ErrDatesAlreadyBooked
		}

		if errors.Is(err, reservationRepo.ErrDuplicateConfirmation) {
			uc.logger.Warn("CreateManualReservation: confirmation number collision, regenerating (attempt %d)", attempt+1)
			lastErr = err
			continue
		}

		uc.logger.Error("CreateManualReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
	}

	return nil, fmt.Errorf("%w: confirmation number retries exhausted: %v", ErrInternal, lastErr)
}
