package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/pricing"
)

// --- Фейки ---

type fakeReservationRepo struct {
	hasOverlap    bool
	overlapErr    error
	createErrs    []error // очередь ошибок Create; после исчерпания - успех
	createCalls   int
	created       []*domain.Reservation
	nextID        int64
	confirmations map[string]bool
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.nextID++
	created := *r
	created.ID = f.nextID
	created.CreatedAt = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	if f.confirmations == nil {
		f.confirmations = make(map[string]bool)
	}
	f.confirmations[created.ConfirmationNumber] = true
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeReservationRepo) HasOverlap(_ context.Context, _ int64, _, _ time.Time, _ *int64) (bool, error) {
	return f.hasOverlap, f.overlapErr
}

type fakeOverrideRepo struct {
	overrides []*domain.DailyOverride
	err       error
}

// Фильтрует по тем же границам, что и SQL репозитория:
// [DayKey(from), DayKey(to)] включительно
func (f *fakeOverrideRepo) GetByListingAndPeriod(_ context.Context, _ int64, from, to time.Time) ([]*domain.DailyOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.DailyOverride, 0, len(f.overrides))
	for _, o := range f.overrides {
		day := domain.DayKey(o.Date)
		if !day.Before(domain.DayKey(from)) && !day.After(domain.DayKey(to)) {
			result = append(result, o)
		}
	}
	return result, nil
}

type fakeVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	return f.venue, f.err
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

var testNow = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func activeBeach() *venueservice.Venue {
	return &venueservice.Venue{
		ID:               42,
		OwnerID:          7,
		Type:             string(domain.VenueBeach),
		MaxGuestCount:    6,
		BasePricePerHour: 15,
		BasePricePerDay:  230,
		Currency:         "EUR",
		IsActive:         true,
		Status:           domain.VenueStatusActive,
	}
}

func validRequest() *Request {
	return &Request{
		GuestID:    101,
		ListingID:  42,
		StartTime:  testNow.Add(24 * time.Hour),
		EndTime:    testNow.Add(48 * time.Hour),
		GuestCount: 2,
	}
}

func newTestUseCase(repo *fakeReservationRepo, overrides *fakeOverrideRepo, venues *fakeVenueClient, tx *fakeTxManager) *UseCase {
	calc := pricing.NewCalculator(pricing.PolicyPerDayOverrides, 1.0)
	uc := NewUseCase(repo, overrides, venues, calc, tx, nopLogger{}, 15, 3)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	repo := &fakeReservationRepo{}
	tx := &fakeTxManager{}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, tx)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.SourceOnline), resp.Source)
	assert.Equal(t, string(domain.BookingDaily), resp.BookingType)
	assert.Equal(t, 230.0, resp.TotalPrice)
	assert.Equal(t, resp.TotalPrice, resp.FinalPrice)
	assert.Equal(t, 0.0, resp.DiscountAmount)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Regexp(t, `^SW20260701[0-9a-f]{8}$`, resp.ConfirmationNumber)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_OverlapRejected(t *testing.T) {
	repo := &fakeReservationRepo{hasOverlap: true}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDatesAlreadyBooked)
	assert.Equal(t, 0, repo.createCalls)
}

func TestExecute_ExclusionConstraintRace(t *testing.T) {
	// Пересечение проскочило мимо HasOverlap, но его поймал constraint БД
	repo := &fakeReservationRepo{createErrs: []error{reservationRepo.ErrWindowConflict}}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDatesAlreadyBooked)
	assert.Equal(t, 1, repo.createCalls)
}

func TestExecute_ConfirmationCollisionRetried(t *testing.T) {
	repo := &fakeReservationRepo{createErrs: []error{reservationRepo.ErrDuplicateConfirmation}}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, repo.createCalls)
	assert.NotEmpty(t, resp.ConfirmationNumber)
}

func TestExecute_ConfirmationRetriesExhausted(t *testing.T) {
	repo := &fakeReservationRepo{createErrs: []error{
		reservationRepo.ErrDuplicateConfirmation,
		reservationRepo.ErrDuplicateConfirmation,
		reservationRepo.ErrDuplicateConfirmation,
	}}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 3, repo.createCalls)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{err: venueservice.ErrVenueNotFound}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_VenueNotAccepting(t *testing.T) {
	inactive := activeBeach()
	inactive.IsActive = false
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: inactive}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueNotAccepting)

	suspended := activeBeach()
	suspended.Status = "suspended"
	uc = newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: suspended}, &fakeTxManager{})

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueNotAccepting)
}

func TestExecute_GuestCountExceeded(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	req := validRequest()
	req.GuestCount = 7 // вместимость 6

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrGuestCountExceeded)
}

func TestExecute_StartTimeInPast(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	req := validRequest()
	req.StartTime = testNow.Add(-time.Hour)
	req.EndTime = testNow.Add(3 * time.Hour)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrStartTimeInPast)
}

func TestExecute_StartTimeWithinGraceWindow(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeOverrideRepo{},
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	// Начало 10 минут назад при grace-окне 15 минут - допустимо
	req := validRequest()
	req.StartTime = testNow.Add(-10 * time.Minute)
	req.EndTime = testNow.Add(26 * time.Hour)

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	req := validRequest()
	req.EndTime = req.StartTime

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_BlockedDate(t *testing.T) {
	req := validRequest()
	overrides := &fakeOverrideRepo{overrides: []*domain.DailyOverride{
		{
			ListingID:   req.ListingID,
			Date:        domain.DayKey(req.StartTime),
			Price:       230,
			IsAvailable: false,
		},
	}}
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, overrides, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateUnavailable)
	assert.Equal(t, 0, repo.createCalls)
}

func TestExecute_PerDayOverridePrice(t *testing.T) {
	req := validRequest()
	overrides := &fakeOverrideRepo{overrides: []*domain.DailyOverride{
		{
			ListingID:   req.ListingID,
			Date:        domain.DayKey(req.StartTime),
			Price:       300,
			IsAvailable: true,
		},
	}}
	uc := newTestUseCase(&fakeReservationRepo{}, overrides,
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.TotalPrice)
}

func TestExecute_BlockedFinalPartialDay(t *testing.T) {
	// бронирование заканчивается днем: последний затронутый день
	// тоже проверяется по календарю
	req := validRequest()
	req.StartTime = time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC)
	req.EndTime = time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)

	overrides := &fakeOverrideRepo{overrides: []*domain.DailyOverride{
		{
			ListingID:   req.ListingID,
			Date:        time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
			Price:       230,
			IsAvailable: false,
		},
	}}
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, overrides, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateUnavailable)
	assert.Equal(t, 0, repo.createCalls)
}

func TestExecute_OverrideOnFinalPartialDayPriced(t *testing.T) {
	// 49 часов = 3 оплачиваемых дня; переопределение на последний день
	// участвует в цене: 230 + 230 + 300
	req := validRequest()
	req.StartTime = time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC)
	req.EndTime = time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)

	overrides := &fakeOverrideRepo{overrides: []*domain.DailyOverride{
		{
			ListingID:   req.ListingID,
			Date:        time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
			Price:       300,
			IsAvailable: true,
		},
	}}
	uc := newTestUseCase(&fakeReservationRepo{}, overrides,
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 760.0, resp.TotalPrice)
}

func TestExecute_BookingTypeMismatch(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	// 24 часа пляжа тарифицируются посуточно; запрошен почасовой тип
	req := validRequest()
	req.BookingType = string(domain.BookingHourly)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBookingTypeMismatch)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeOverrideRepo{},
		&fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero guest id", func(r *Request) { r.GuestID = 0 }},
		{"zero listing id", func(r *Request) { r.ListingID = 0 }},
		{"zero guest count", func(r *Request) { r.GuestCount = 0 }},
		{"zero start time", func(r *Request) { r.StartTime = time.Time{} }},
		{"unknown booking type", func(r *Request) { r.BookingType = "weekly" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RepoFailureWrapsInternal(t *testing.T) {
	repo := &fakeReservationRepo{overlapErr: errors.New("connection reset")}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SerializationFailureStaysDetectable(t *testing.T) {
	// Конфликт сериализации из репозитория должен пройти через обертки
	// usecase не потеряв драйверную ошибку: по ней txmanager решает
	// повторить транзакцию
	repo := &fakeReservationRepo{overlapErr: &pq.Error{Code: "40001"}}
	uc := newTestUseCase(repo, &fakeOverrideRepo{}, &fakeVenueClient{venue: activeBeach()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}
