package delete_event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/delete_event"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgEventNotFound  = "событие не найдено"
)

type Handler struct {
	useCase DeleteEventUseCase
	logger  Logger
}

func NewHandler(useCase DeleteEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/events/{eventId}
//
// Удаляет событие со всеми слотами, бронированиями и настройками.
// Журнал попыток бронирования не трогаем.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventID, err := strconv.ParseInt(vars["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &usecase.Request{EventID: eventID})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			h.logger.Warn("DELETE /events/{id} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("DELETE /events/{id} - Invalid input: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		default:
			h.logger.Error("DELETE /events/{id} - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events/{id} - Event deleted: event_id=%d, bookings=%d, slots=%d",
		eventID, result.BookingsDeleted, result.SlotsDeleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
