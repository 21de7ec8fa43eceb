package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations/models"
	"github.com/kaancelik05/swimago-api-sub000/pkg/ptr"
)

// --- Фейки ---

type fakeRepo struct {
	reservations map[int64]*domain.Reservation

	cancelledID     int64
	cancelledStatus domain.ReservationStatus
	cancelReason    *string

	updatedID     int64
	updatedStatus domain.ReservationStatus

	listFilter domain.ListingReservationsFilter
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	repo := &fakeRepo{reservations: make(map[int64]*domain.Reservation)}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if r, ok := f.reservations[id]; ok {
		return r, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeRepo) GetByGuestID(_ context.Context, guestID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.GuestID != guestID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRepo) GetByListingWithFilter(_ context.Context, filter domain.ListingReservationsFilter) ([]*domain.Reservation, error) {
	f.listFilter = filter
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.ListingID == filter.ListingID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.ReservationStatus, reason *string) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelReason = reason
	return nil
}

type fakeVenueClient struct {
	ownerID int64
	err     error
}

func (f *fakeVenueClient) GetVenue(_ context.Context, listingID int64) (*venueservice.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &venueservice.Venue{ID: listingID, OwnerID: f.ownerID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

const (
	guestID = int64(101)
	ownerID = int64(7)
)

func reservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:                 id,
		ListingID:          42,
		GuestID:            guestID,
		VenueType:          domain.VenueBeach,
		BookingType:        domain.BookingDaily,
		Source:             domain.SourceOnline,
		StartTime:          time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC),
		EndTime:            time.Date(2026, 7, 16, 10, 0, 0, 0, time.UTC),
		GuestCount:         2,
		Status:             status,
		ConfirmationNumber: "SW20260701deadbeef",
		CreatedAt:          time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:          time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newService(repo *fakeRepo, venues *fakeVenueClient) *Service {
	return NewService(repo, venues, nopLogger{})
}

// --- GetByID ---

func TestGetByID_GuestAccess(t *testing.T) {
	svc := newService(newFakeRepo(reservation(1, domain.StatusConfirmed)), &fakeVenueClient{ownerID: ownerID})

	resp, err := svc.GetByID(context.Background(), 1, guestID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_OwnerAccess(t *testing.T) {
	svc := newService(newFakeRepo(reservation(1, domain.StatusConfirmed)), &fakeVenueClient{ownerID: ownerID})

	_, err := svc.GetByID(context.Background(), 1, ownerID)

	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc := newService(newFakeRepo(reservation(1, domain.StatusConfirmed)), &fakeVenueClient{ownerID: ownerID})

	_, err := svc.GetByID(context.Background(), 1, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeVenueClient{ownerID: ownerID})

	_, err := svc.GetByID(context.Background(), 404, guestID)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

// --- Cancel ---

func TestCancel_ByGuest(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusConfirmed))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:             guestID,
		CancellationReason: ptr.Ptr("планы изменились"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelled, repo.cancelledStatus)
	require.NotNil(t, repo.cancelReason)
	assert.Equal(t, "планы изменились", *repo.cancelReason)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusPending))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusConfirmed))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 999})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_GuardsNonCancellableStatuses(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusInProgress, domain.StatusCompleted,
		domain.StatusCancelled, domain.StatusRejected, domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepo(reservation(1, status))
			svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

			err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: guestID})

			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Zero(t, repo.cancelledID)
		})
	}
}

// --- UpdateStatus ---

func TestUpdateStatus_OwnerConfirmsPending(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusPending))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "confirmed",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestUpdateStatus_GuestDenied(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusPending))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: guestID,
		Status: "confirmed",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	tests := []struct {
		from domain.ReservationStatus
		to   string
	}{
		{domain.StatusPending, "in_progress"},
		{domain.StatusPending, "no_show"},
		{domain.StatusCompleted, "cancelled"},
		{domain.StatusCancelled, "confirmed"},
		{domain.StatusNoShow, "completed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+tt.to, func(t *testing.T) {
			repo := newFakeRepo(reservation(1, tt.from))
			svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				UserID: ownerID,
				Status: tt.to,
			})

			assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			assert.Zero(t, repo.updatedID)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusPending))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- CheckIn ---

func TestCheckIn(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusConfirmed))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.CheckIn(context.Background(), 1, ownerID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, repo.updatedStatus)
}

func TestCheckIn_PendingRejected(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusPending))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	err := svc.CheckIn(context.Background(), 1, ownerID)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

// --- ValidateReviewEligibility ---

func TestValidateReviewEligibility(t *testing.T) {
	svc := newService(newFakeRepo(reservation(1, domain.StatusCompleted)), &fakeVenueClient{ownerID: ownerID})

	assert.NoError(t, svc.ValidateReviewEligibility(context.Background(), 1, guestID))
}

func TestValidateReviewEligibility_NotGuest(t *testing.T) {
	svc := newService(newFakeRepo(reservation(1, domain.StatusCompleted)), &fakeVenueClient{ownerID: ownerID})

	assert.ErrorIs(t, svc.ValidateReviewEligibility(context.Background(), 1, ownerID), ErrAccessDenied)
}

func TestValidateReviewEligibility_NotCompleted(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusCancelled, domain.StatusNoShow,
	} {
		svc := newService(newFakeRepo(reservation(1, status)), &fakeVenueClient{ownerID: ownerID})
		assert.ErrorIs(t, svc.ValidateReviewEligibility(context.Background(), 1, guestID),
			ErrReviewNotAllowed, "status %s", status)
	}
}

// --- Списки ---

func TestGetGuestReservations_StatusFilter(t *testing.T) {
	repo := newFakeRepo(
		reservation(1, domain.StatusConfirmed),
		reservation(2, domain.StatusCancelled),
	)
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	result, err := svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: guestID,
		Status:  ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.Len(t, result.Reservations, 1)
	assert.Equal(t, int64(1), result.Reservations[0].ID)
}

func TestGetGuestReservations_InvalidStatus(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeVenueClient{ownerID: ownerID})

	_, err := svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: guestID,
		Status:  ptr.Ptr("archived"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetListingReservations_OwnerOnly(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusConfirmed))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	_, err := svc.GetListingReservations(context.Background(), &models.GetListingReservationsRequest{
		UserID:    guestID,
		ListingID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	result, err := svc.GetListingReservations(context.Background(), &models.GetListingReservationsRequest{
		UserID:    ownerID,
		ListingID: 42,
	})
	require.NoError(t, err)
	assert.Len(t, result.Reservations, 1)
}

func TestGetListingReservations_FilterPassedThrough(t *testing.T) {
	repo := newFakeRepo(reservation(1, domain.StatusConfirmed))
	svc := newService(repo, &fakeVenueClient{ownerID: ownerID})

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetListingReservations(context.Background(), &models.GetListingReservationsRequest{
		UserID:          ownerID,
		ListingID:       42,
		StartDate:       &start,
		EndDate:         &end,
		Status:          ptr.Ptr("confirmed"),
		IncludeReleased: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.listFilter.ListingID)
	assert.Equal(t, &start, repo.listFilter.StartDate)
	assert.Equal(t, &end, repo.listFilter.EndDate)
	require.NotNil(t, repo.listFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.listFilter.Status)
	assert.True(t, repo.listFilter.IncludeReleased)
}

func TestGetListingReservations_VenueNotFound(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeVenueClient{err: venueservice.ErrVenueNotFound})

	_, err := svc.GetListingReservations(context.Background(), &models.GetListingReservationsRequest{
		UserID:    ownerID,
		ListingID: 42,
	})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}
