package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	checkAvailability "github.com/kaancelik05/swimago-api-sub000/internal/usecase/check_availability"
)

const (
	msgInvalidListingID  = "некорректный ID площадки"
	msgInvalidTimeFormat = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidTimeRange  = "некорректный временной интервал"
	msgVenueNotFound     = "площадка не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/listings/{listingId}/availability
// Query params: start, end (RFC 3339, обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/availability - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	useCaseReq, err := ToUseCaseRequest(listingID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/availability - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /listings/{id}/availability - Venue not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidTimeRange),
			errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /listings/{id}/availability - Invalid params: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("GET /listings/{id}/availability - Failed to check availability: listing_id=%d, error=%v",
				listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /listings/{id}/availability - Checked: listing_id=%d, available=%t",
		listingID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
