package create_manual_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/guestservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/pricing"
)

// --- Фейки ---

type fakeReservationRepo struct {
	hasOverlap  bool
	createErrs  []error
	createCalls int
	created     []*domain.Reservation
	nextID      int64
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
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeReservationRepo) HasOverlap(_ context.Context, _ int64, _, _ time.Time, _ *int64) (bool, error) {
	return f.hasOverlap, nil
}

type fakeOverrideRepo struct {
	overrides []*domain.DailyOverride
}

// Фильтрует по тем же границам, что и SQL репозитория:
// [DayKey(from), DayKey(to)] включительно
func (f *fakeOverrideRepo) GetByListingAndPeriod(_ context.Context, _ int64, from, to time.Time) ([]*domain.DailyOverride, error) {
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

type fakeGuestResolver struct {
	guest *guestservice.Guest
	err   error
	calls int
}

func (f *fakeGuestResolver) FindOrCreateByPhone(_ context.Context, _, _ string) (*guestservice.Guest, error) {
	f.calls++
	return f.guest, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func ownedYacht(autoConfirm bool) *venueservice.Venue {
	return &venueservice.Venue{
		ID:              55,
		OwnerID:         7,
		Type:            string(domain.VenueYacht),
		MaxGuestCount:   10,
		BasePricePerDay: 500,
		Currency:        "EUR",
		IsActive:        true,
		Status:          domain.VenueStatusActive,
		HostSettings: venueservice.HostSettings{
			AutoConfirmManualBookings: autoConfirm,
		},
	}
}

func resolvedGuest() *guestservice.Guest {
	return &guestservice.Guest{ID: 900, Name: "Ayşe Demir", Phone: "+905551112233"}
}

func validRequest() *Request {
	return &Request{
		ActingUserID: 7,
		ListingID:    55,
		GuestName:    "Ayşe Demir",
		GuestPhone:   "+905551112233",
		StartTime:    testNow.Add(24 * time.Hour),
		EndTime:      testNow.Add(48 * time.Hour),
		GuestCount:   4,
		Source:       string(domain.SourcePhone),
	}
}

func newTestUseCase(repo *fakeReservationRepo, venues *fakeVenueClient, resolver *fakeGuestResolver) *UseCase {
	calc := pricing.NewCalculator(pricing.PolicyPerDayOverrides, 1.0)
	uc := NewUseCase(repo, &fakeOverrideRepo{}, venues, resolver, calc, fakeTxManager{}, nopLogger{}, 15, 3)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

// --- Тесты ---

func TestExecute_AutoConfirmed(t *testing.T) {
	repo := &fakeReservationRepo{}
	resolver := &fakeGuestResolver{guest: resolvedGuest()}
	uc := newTestUseCase(repo, &fakeVenueClient{venue: ownedYacht(true)}, resolver)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.SourcePhone), resp.Source)
	assert.Equal(t, int64(900), resp.GuestID)
	assert.Equal(t, "Ayşe Demir", resp.GuestName)
	assert.Equal(t, 1, resolver.calls)

	require.Len(t, repo.created, 1)
	require.NotNil(t, repo.created[0].ConfirmedAt)
	assert.Equal(t, testNow, *repo.created[0].ConfirmedAt)
}

func TestExecute_PendingWithoutAutoConfirm(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeVenueClient{venue: ownedYacht(false)},
		&fakeGuestResolver{guest: resolvedGuest()})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].ConfirmedAt)
}

func TestExecute_OnlyOwnerMayBook(t *testing.T) {
	resolver := &fakeGuestResolver{guest: resolvedGuest()}
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)}, resolver)

	req := validRequest()
	req.ActingUserID = 999

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, resolver.calls)
}

func TestExecute_OnlineSourceRejected(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	req := validRequest()
	req.Source = string(domain.SourceOnline)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_WalkInAccepted(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	req := validRequest()
	req.Source = string(domain.SourceWalkIn)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.SourceWalkIn), resp.Source)
}

func TestExecute_DiscountApplied(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	req := validRequest()
	req.DiscountAmount = 50

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 500.0, resp.TotalPrice)
	assert.Equal(t, 50.0, resp.DiscountAmount)
	assert.Equal(t, 450.0, resp.FinalPrice)
}

func TestExecute_DiscountValidation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	req := validRequest()
	req.DiscountAmount = -10

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	req = validRequest()
	req.DiscountAmount = 600 // стоимость 500

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestExecute_InvalidPhone(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{err: guestservice.ErrInvalidPhone})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestExecute_OverlapRejected(t *testing.T) {
	repo := &fakeReservationRepo{hasOverlap: true}
	uc := newTestUseCase(repo, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDatesAlreadyBooked)
	assert.Equal(t, 0, repo.createCalls)
}

func TestExecute_ExclusionConstraintRace(t *testing.T) {
	repo := &fakeReservationRepo{createErrs: []error{reservationRepo.ErrWindowConflict}}
	uc := newTestUseCase(repo, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDatesAlreadyBooked)
}

func TestExecute_ConfirmationCollisionRetried(t *testing.T) {
	repo := &fakeReservationRepo{createErrs: []error{reservationRepo.ErrDuplicateConfirmation}}
	uc := newTestUseCase(repo, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, repo.createCalls)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeVenueClient{venue: ownedYacht(true)},
		&fakeGuestResolver{guest: resolvedGuest()})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty guest name", func(r *Request) { r.GuestName = "  " }},
		{"empty guest phone", func(r *Request) { r.GuestPhone = "" }},
		{"zero acting user", func(r *Request) { r.ActingUserID = 0 }},
		{"zero guest count", func(r *Request) { r.GuestCount = 0 }},
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
