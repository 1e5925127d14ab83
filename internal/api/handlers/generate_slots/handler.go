package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/generate_slots"
)

const (
	msgInvalidEventID    = "некорректный ID события"
	msgInvalidCompanyID  = "некорректный ID компании"
	msgEventNotFound     = "событие не найдено"
	msgNoTimeRanges      = "у события нет временных окон"
	msgNoActiveCompanies = "у события нет активных компаний"
	msgNotParticipant    = "компания не участвует в событии"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/{eventId}/slots/generate
//
// Пересоздает сетку слотов события. Слоты с бронированиями не трогаем,
// свободные пересоздаются по текущим настройкам события.
// Query параметр companyId сужает регенерацию до одной компании.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventID, err := strconv.ParseInt(vars["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /events/{id}/slots/generate - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	req := &usecase.Request{EventID: eventID}
	if raw := r.URL.Query().Get("companyId"); raw != "" {
		companyID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("POST /events/{id}/slots/generate - Invalid company ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCompanyID)
			return
		}
		req.CompanyID = &companyID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			h.logger.Warn("POST /events/{id}/slots/generate - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, usecase.ErrNoTimeRanges):
			h.logger.Warn("POST /events/{id}/slots/generate - No time ranges: event_id=%d", eventID)
			handlers.RespondConflict(w, msgNoTimeRanges)

		case errors.Is(err, usecase.ErrNoActiveCompanies):
			h.logger.Warn("POST /events/{id}/slots/generate - No active companies: event_id=%d", eventID)
			handlers.RespondConflict(w, msgNoActiveCompanies)

		case errors.Is(err, usecase.ErrCompanyNotParticipant):
			h.logger.Warn("POST /events/{id}/slots/generate - Company not participant: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgNotParticipant)

		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /events/{id}/slots/generate - Invalid input: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		default:
			h.logger.Error("POST /events/{id}/slots/generate - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/{id}/slots/generate - Generated slots: event_id=%d, created=%d, preserved=%d",
		eventID, result.SlotsCreated, result.SlotsPreserved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
