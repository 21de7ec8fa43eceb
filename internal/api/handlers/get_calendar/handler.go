package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/calendar"
)

const (
	msgInvalidListingID = "некорректный ID площадки"
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidMonth     = "некорректный месяц или год"
	msgVenueNotFound    = "площадка не найдена"
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

// Handle GET /api/v1/listings/{listingId}/calendar
// Query params: month, year (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/calendar - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.logger.Warn("GET /listings/{id}/calendar - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.logger.Warn("GET /listings/{id}/calendar - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetCalendar(r.Context(), listingID, month, year)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrVenueNotFound):
			h.logger.Warn("GET /listings/{id}/calendar - Venue not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, calendar.ErrInvalidMonth):
			h.logger.Warn("GET /listings/{id}/calendar - Invalid month: listing_id=%d, month=%d, year=%d",
				listingID, month, year)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /listings/{id}/calendar - Failed to get calendar: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /listings/{id}/calendar - Calendar retrieved: listing_id=%d, month=%d, year=%d",
		listingID, month, year)
	handlers.RespondJSON(w, http.StatusOK, result)
}
