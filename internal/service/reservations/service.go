package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	venueClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations/models"
)

// Service сервис для работы с существующими бронированиями:
// чтение, отмена, переходы статусов, проверка права на отзыв.
// Создание бронирований живёт в usecase-слое.
type Service struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно гостю бронирования и владельцу площадки.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReservationAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetGuestReservations получает историю бронирований гостя
// Опционально фильтрует по статусу
func (s *Service) GetGuestReservations(ctx context.Context, req *models.GetGuestReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetGuestReservations: fetching reservations for guest=%d, status=%v", req.GuestID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetGuestReservations: invalid status=%s for guest=%d", *req.Status, req.GuestID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByGuestID(ctx, req.GuestID, domainStatus)
	if err != nil {
		s.logger.Error("GetGuestReservations: repository error for guest=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestReservations: fetched %d reservations for guest=%d", len(reservations), req.GuestID)
	return models.FromDomainReservationList(reservations), nil
}

// GetListingReservations получает бронирования площадки с фильтрацией.
// Доступно только владельцу площадки.
func (s *Service) GetListingReservations(ctx context.Context, req *models.GetListingReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetListingReservations: fetching reservations for listing=%d, user=%d", req.ListingID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.ListingID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetListingReservations: invalid filter for listing=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByListingWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetListingReservations: repository error for listing=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: GetListingReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetListingReservations: fetched %d reservations for listing=%d", len(reservations), req.ListingID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Гость может отменить только своё бронирование; владелец площадки - любое
// бронирование своей площадки. Отменить можно только pending или confirmed;
// отмена уже отменённого бронирования - ошибка, не no-op.
// Освободившийся интервал сразу доступен для новых бронирований.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.getReservation(ctx, "Cancel", reservationID)
	if err != nil {
		return err
	}

	if reservation.GuestID != req.UserID {
		// Не гость - проверяем, что актор владеет площадкой
		if err := s.checkOwnerAccess(ctx, reservation.ListingID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, domain.StatusCancelled, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled, slot released", reservationID)
	return nil
}

// UpdateStatus обновляет статус бронирования по графу переходов.
// Доступно только владельцу площадки. Недопустимый переход (включая любой
// переход из терминального статуса) завершается ошибкой, никогда молча.
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	reservation, err := s.getReservation(ctx, "UpdateStatus", reservationID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, reservation.ListingID, req.UserID); err != nil {
		return err
	}

	newStatus, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !reservation.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for reservation id=%d",
			reservation.Status, newStatus, reservationID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, reservation.Status, newStatus)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d updated to status=%s", reservationID, newStatus)
	return nil
}

// CheckIn отмечает заезд гостя: переход confirmed -> in_progress
func (s *Service) CheckIn(ctx context.Context, reservationID int64, userID int64) error {
	return s.UpdateStatus(ctx, reservationID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: string(domain.StatusInProgress),
	})
}

// ValidateReviewEligibility проверяет, может ли гость оставить отзыв.
// Отзывы разрешены только гостю завершённого бронирования.
func (s *Service) ValidateReviewEligibility(ctx context.Context, reservationID int64, guestID int64) error {
	reservation, err := s.getReservation(ctx, "ValidateReviewEligibility", reservationID)
	if err != nil {
		return err
	}

	if reservation.GuestID != guestID {
		s.logger.Warn("ValidateReviewEligibility: user=%d is not the guest of reservation id=%d", guestID, reservationID)
		return ErrAccessDenied
	}

	if !reservation.CanBeReviewed() {
		s.logger.Warn("ValidateReviewEligibility: reservation id=%d has status=%s", reservationID, reservation.Status)
		return ErrReviewNotAllowed
	}

	return nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// checkReservationAccess проверяет, что пользователь - гость бронирования
// или владелец площадки
func (s *Service) checkReservationAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.GuestID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, reservation.ListingID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь владеет площадкой
func (s *Service) checkOwnerAccess(ctx context.Context, listingID int64, userID int64) error {
	venue, err := s.venueClient.GetVenue(ctx, listingID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkOwnerAccess: venue id=%d not found", listingID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get venue id=%d: %v", listingID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if venue.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of venue=%d", userID, listingID)
		return ErrAccessDenied
	}

	return nil
}
