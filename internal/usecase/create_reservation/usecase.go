package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	venueClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// UseCase use case для создания онлайн-бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	overrideRepo    OverrideRepository
	venueClient     VenueServiceClient
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
		calculator:      calculator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		graceMinutes:    graceMinutes,
		insertTries:     insertTries,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечения и вставка выполняются в одной сериализуемой транзакции;
// вторым рубежом двойное бронирование останавливает exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: guest=%d, listing=%d, start=%s, end=%s, guests=%d",
		req.GuestID, req.ListingID, req.StartTime.Format(domain.DateFormat+" 15:04"),
		req.EndTime.Format(domain.DateFormat+" 15:04"), req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем снапшот площадки
	venue, err := uc.venueClient.GetVenue(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateReservation: venue id=%d not found", req.ListingID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateReservation: failed to get venue id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Площадка должна принимать бронирования
	if err := validateVenueAccepting(venue); err != nil {
		uc.logger.Warn("CreateReservation: venue id=%d is not accepting reservations", req.ListingID)
		return nil, err
	}

	// 5. Число гостей не превышает вместимость
	if err := validateGuestCount(venue, req.GuestCount); err != nil {
		uc.logger.Warn("CreateReservation: guest count %d exceeds capacity of venue id=%d",
			req.GuestCount, req.ListingID)
		return nil, err
	}

	// 6. Временной интервал корректен и не в прошлом.
	// Граница уже проверила это, но движок перепроверяет сам.
	if err := validateWindow(req.StartTime, req.EndTime, now, uc.graceMinutes); err != nil {
		uc.logger.Warn("CreateReservation: window validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 7. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.reserve(txCtx, req, venue, now)
		if err != nil {
			return err
		}
		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, confirmation=%s, total=%.2f %s",
		result.ID, result.ConfirmationNumber, result.TotalPrice, result.Currency)

	return fromDomain(result), nil
}

// reserve выполняет транзакционную часть: календарь, пересечения, цена, вставка
func (uc *UseCase) reserve(txCtx context.Context, req *Request, venue *venueClient.Venue, now time.Time) (*domain.Reservation, error) {
	// 7.1. Календарные переопределения на все затронутые даты
	// Ошибки репозиториев внутри транзакции оборачиваем через %w:
	// txmanager различает serialization failure по цепочке ошибок
	overrides, err := uc.overrideRepo.GetByListingAndPeriod(txCtx, req.ListingID, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get calendar overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar overrides: %w", ErrInternal, err)
	}
	indexed := overridesByDay(overrides)

	// 7.2. Оператор мог закрыть часть дат
	if day, blocked := blockedDate(indexed, req.StartTime, req.EndTime); blocked {
		uc.logger.Warn("CreateReservation: date %s is blocked for listing=%d",
			day.Format(domain.DateFormat), req.ListingID)
		return nil, ErrDateUnavailable
	}

	// 7.3. Проверяем пересечение с существующими бронированиями
	hasOverlap, err := uc.reservationRepo.HasOverlap(txCtx, req.ListingID, req.StartTime, req.EndTime, nil)
	if err != nil {
		uc.logger.Error("CreateReservation: overlap check failed: %v", err)
		return nil, fmt.Errorf("%w: overlap check failed: %w", ErrInternal, err)
	}
	if hasOverlap {
		uc.logger.Warn("CreateReservation: window [%s, %s) already booked for listing=%d",
			req.StartTime.Format(domain.DateFormat+" 15:04"), req.EndTime.Format(domain.DateFormat+" 15:04"),
			req.ListingID)
		return nil, ErrDatesAlreadyBooked
	}

	// 7.4. Считаем стоимость
	quote, err := uc.calculator.Calculate(venue, req.StartTime, req.EndTime, req.GuestCount, indexed)
	if err != nil {
		uc.logger.Error("CreateReservation: price calculation failed: %v", err)
		return nil, fmt.Errorf("%w: price calculation failed: %v", ErrInternal, err)
	}

	// Тип тарификации определяется правилами площадки; явно запрошенный
	// тип должен с ними совпадать
	if req.BookingType != "" && req.BookingType != string(quote.BookingType) {
		uc.logger.Warn("CreateReservation: requested booking type %s, billing rules give %s",
			req.BookingType, quote.BookingType)
		return nil, ErrBookingTypeMismatch
	}

	venueType, err := domain.ParseVenueType(venue.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	reservation := &domain.Reservation{
		ListingID:       req.ListingID,
		GuestID:         req.GuestID,
		VenueType:       venueType,
		BookingType:     quote.BookingType,
		Source:          domain.SourceOnline,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		GuestCount:      req.GuestCount,
		UnitPrice:       quote.UnitPrice,
		UnitCount:       quote.UnitCount,
		TotalPrice:      quote.TotalPrice,
		DiscountAmount:  0,
		FinalPrice:      quote.TotalPrice,
		Currency:        quote.Currency,
		Status:          domain.StatusPending,
		SpecialRequests: req.SpecialRequests,
	}

	// 7.5. Вставляем с повтором при коллизии номера подтверждения
	return uc.insertWithFreshConfirmation(txCtx, reservation, now)
}

// insertWithFreshConfirmation вставляет бронирование, генерируя новый номер
// подтверждения при коллизии. Уникальность гарантирует только constraint БД.
func (uc *UseCase) insertWithFreshConfirmation(txCtx context.Context, reservation *domain.Reservation, now time.Time) (*domain.Reservation, error) {
	var lastErr error

	for attempt := 0; attempt < uc.insertTries; attempt++ {
		reservation.ConfirmationNumber = domain.NewConfirmationNumber(now)

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err == nil {
			return created, nil
		}

		if errors.Is(err, reservationRepo.ErrWindowConflict) {
			// Конкурентная транзакция успела занять интервал
			uc.logger.Warn("CreateReservation: exclusion constraint rejected window for listing=%d",
				reservation.ListingID)
			return nil, ErrDatesAlreadyBooked
		}

		if errors.Is(err, reservationRepo.ErrDuplicateConfirmation) {
			uc.logger.Warn("CreateReservation: confirmation number collision, regenerating (attempt %d)", attempt+1)
			lastErr = err
			continue
		}

		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
	}

	return nil, fmt.Errorf("%w: confirmation number retries exhausted: %v", ErrInternal, lastErr)
}
