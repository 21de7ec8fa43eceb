package get_guest_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	"github.com/kaancelik05/swimago-api-sub000/internal/api/middleware"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/reservations/models"
)

const (
	msgInvalidGuestID = "некорректный ID гостя"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
	msgInvalidStatus  = "некорректный статус бронирования"
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

// Handle GET /api/v1/guests/{userId}/reservations
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guestID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/reservations - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Гость видит только собственные бронирования
	if userID != guestID {
		h.logger.Warn("GET /users/{userId}/reservations - Access denied: guest_id=%d, user_id=%d",
			guestID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetGuestReservationsRequest{
		GuestID: guestID,
		Status:  statusPtr,
	}

	result, err := h.service.GetGuestReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/reservations - Invalid status filter: guest_id=%d, status=%s",
				guestID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/reservations - Failed to get reservations: guest_id=%d, error=%v",
				guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/reservations - Reservations retrieved: guest_id=%d, count=%d",
		guestID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
