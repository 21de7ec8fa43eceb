package get_listing_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	"github.com/kaancelik05/swimago-api-sub000/internal/api/middleware"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations"
)

const (
	msgInvalidListingID = "некорректный ID площадки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgForbidden        = "доступ запрещен"
	msgVenueNotFound    = "площадка не найдена"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/listings/{listingId}/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, includeReleased (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/reservations - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /listings/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		listingID,
		userID,
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		query.Get("includeReleased"),
	)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования площадки (сервис сам проверит права владельца)
	result, err := h.service.GetListingReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrVenueNotFound):
			h.logger.Warn("GET /listings/{id}/reservations - Venue not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /listings/{id}/reservations - Access denied: listing_id=%d, user_id=%d",
				listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /listings/{id}/reservations - Invalid input: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /listings/{id}/reservations - Failed to get reservations: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /listings/{id}/reservations - Reservations retrieved: listing_id=%d, user_id=%d, count=%d",
		listingID, userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
