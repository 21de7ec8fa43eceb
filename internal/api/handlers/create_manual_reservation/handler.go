package create_manual_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	"github.com/kaancelik05/swimago-api-sub000/internal/api/middleware"
	createManualReservation "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_manual_reservation"
)

const (
	msgInvalidListingID   = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgVenueNotFound      = "площадка не найдена"
	msgVenueNotAccepting  = "площадка не принимает бронирования"
	msgGuestCountExceeded = "число гостей превышает вместимость площадки"
	msgInvalidTimeRange   = "некорректный временной интервал"
	msgStartTimeInPast    = "время начала бронирования в прошлом"
	msgDatesAlreadyBooked = "выбранные даты уже забронированы"
	msgDateUnavailable    = "одна из дат закрыта для бронирования"
	msgInvalidPhone       = "некорректный номер телефона гостя"
	msgInvalidDiscount    = "некорректная сумма скидки"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateManualReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateManualReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/listings/{listingId}/manual-reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /listings/{id}/manual-reservations - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /listings/{id}/manual-reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateManualReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /listings/{id}/manual-reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, listingID)
	if err != nil {
		h.logger.Warn("POST /listings/{id}/manual-reservations - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createManualReservation.ErrAccessDenied):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Access denied: listing_id=%d, user_id=%d",
				listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createManualReservation.ErrDatesAlreadyBooked):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Dates already booked: listing_id=%d", listingID)
			handlers.RespondError(w, http.StatusConflict, msgDatesAlreadyBooked)

		case errors.Is(err, createManualReservation.ErrVenueNotFound):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Venue not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createManualReservation.ErrVenueNotAccepting):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Venue not accepting: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgVenueNotAccepting)

		case errors.Is(err, createManualReservation.ErrGuestCountExceeded):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Guest count exceeded: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgGuestCountExceeded)

		case errors.Is(err, createManualReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Invalid time range: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createManualReservation.ErrStartTimeInPast):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Start time in past: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, createManualReservation.ErrDateUnavailable):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Date unavailable: listing_id=%d", listingID)
			handlers.RespondError(w, http.StatusConflict, msgDateUnavailable)

		case errors.Is(err, createManualReservation.ErrInvalidPhone):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Invalid phone: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createManualReservation.ErrInvalidDiscount):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Invalid discount: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgInvalidDiscount)

		case errors.Is(err, createManualReservation.ErrInvalidInput):
			h.logger.Warn("POST /listings/{id}/manual-reservations - Invalid input: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /listings/{id}/manual-reservations - Failed to create reservation: listing_id=%d, user_id=%d, error=%v",
				listingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /listings/{id}/manual-reservations - Reservation created: reservation_id=%d, listing_id=%d, status=%s",
		result.ID, listingID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
