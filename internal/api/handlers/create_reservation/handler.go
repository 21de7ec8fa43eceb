package create_reservation

import (
	"errors"
	"net/http"

	"github.com/kaancelik05/swimago-api-sub000/internal/api/handlers"
	"github.com/kaancelik05/swimago-api-sub000/internal/api/middleware"
	createReservation "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTimeFormat   = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgVenueNotFound       = "площадка не найдена"
	msgVenueNotAccepting   = "площадка не принимает бронирования"
	msgGuestCountExceeded  = "число гостей превышает вместимость площадки"
	msgInvalidTimeRange    = "некорректный временной интервал"
	msgStartTimeInPast     = "время начала бронирования в прошлом"
	msgDatesAlreadyBooked  = "выбранные даты уже забронированы"
	msgDateUnavailable     = "одна из дат закрыта для бронирования"
	msgBookingTypeMismatch = "тип бронирования не соответствует правилам площадки"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем guestID из контекста (через middleware Auth)
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(guestID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrDatesAlreadyBooked):
			h.logger.Warn("POST /reservations - Dates already booked: guest_id=%d, listing_id=%d",
				guestID, req.ListingID)
			handlers.RespondError(w, http.StatusConflict, msgDatesAlreadyBooked)

		case errors.Is(err, createReservation.ErrVenueNotFound):
			h.logger.Warn("POST /reservations - Venue not found: listing_id=%d", req.ListingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createReservation.ErrVenueNotAccepting):
			h.logger.Warn("POST /reservations - Venue not accepting: listing_id=%d", req.ListingID)
			handlers.RespondBadRequest(w, msgVenueNotAccepting)

		case errors.Is(err, createReservation.ErrGuestCountExceeded):
			h.logger.Warn("POST /reservations - Guest count exceeded: guest_id=%d, listing_id=%d",
				guestID, req.ListingID)
			handlers.RespondBadRequest(w, msgGuestCountExceeded)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /reservations - Invalid time range: guest_id=%d, listing_id=%d",
				guestID, req.ListingID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrStartTimeInPast):
			h.logger.Warn("POST /reservations - Start time in past: guest_id=%d, listing_id=%d",
				guestID, req.ListingID)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, createReservation.ErrDateUnavailable):
			h.logger.Warn("POST /reservations - Date unavailable: guest_id=%d, listing_id=%d",
				guestID, req.ListingID)
			handlers.RespondError(w, http.StatusConflict, msgDateUnavailable)

		case errors.Is(err, createReservation.ErrBookingTypeMismatch):
			h.logger.Warn("POST /reservations - Booking type mismatch: guest_id=%d, listing_id=%d",
				guestID, req.ListingID)
			handlers.RespondBadRequest(w, msgBookingTypeMismatch)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: guest_id=%d, error=%v", guestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: guest_id=%d, listing_id=%d, error=%v",
				guestID, req.ListingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, guest_id=%d, listing_id=%d, confirmation=%s",
		result.ID, guestID, req.ListingID, result.ConfirmationNumber)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
