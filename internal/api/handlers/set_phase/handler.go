package set_phase

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	"github.com/avykhr/CareerDay-BookingService/internal/service/phases"
)

const (
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPhase       = "не указана фаза"
	msgInvalidPhase       = "некорректное значение фазы"
	msgEventNotFound      = "событие не найдено"
)

type Handler struct {
	service PhaseService
	logger  Logger
}

func NewHandler(service PhaseService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/events/{eventId}/phase
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventID, err := strconv.ParseInt(vars["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /events/{id}/phase - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req SetPhaseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /events/{id}/phase - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Auto {
		err = h.service.EnableAuto(r.Context(), eventID)
	} else {
		if req.Phase == nil {
			h.logger.Warn("PATCH /events/{id}/phase - Missing phase: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgMissingPhase)
			return
		}
		err = h.service.SetPhase(r.Context(), eventID, domain.Phase(*req.Phase))
	}

	if err != nil {
		switch {
		case errors.Is(err, phases.ErrEventNotFound):
			h.logger.Warn("PATCH /events/{id}/phase - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, phases.ErrInvalidPhase):
			h.logger.Warn("PATCH /events/{id}/phase - Invalid phase value: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidPhase)

		default:
			h.logger.Error("PATCH /events/{id}/phase - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /events/{id}/phase - Updated: event_id=%d, auto=%t", eventID, req.Auto)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
