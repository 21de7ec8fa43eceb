package update_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	"github.com/kaancelik05/swimago-api-sub000/internal/api/middleware"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/calendar"
)

const (
	msgInvalidListingID   = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgVenueNotFound      = "площадка не найдена"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/listings/{listingId}/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /listings/{id}/calendar - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /listings/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /listings/{id}/calendar - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateCalendar(r.Context(), listingID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrVenueNotFound):
			h.logger.Warn("PUT /listings/{id}/calendar - Venue not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("PUT /listings/{id}/calendar - Access denied: listing_id=%d, user_id=%d",
				listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /listings/{id}/calendar - Invalid input: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /listings/{id}/calendar - Failed to update calendar: listing_id=%d, user_id=%d, error=%v",
				listingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /listings/{id}/calendar - Calendar updated: listing_id=%d, user_id=%d, entries=%d",
		listingID, userID, len(req.Entries))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
