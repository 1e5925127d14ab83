package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/avykhr/CareerDay-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidEventID   = "некорректный ID события"
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidOfferID   = "некорректный ID вакансии"
	msgEventNotFound    = "событие не найдено"
	msgNotParticipant   = "компания не участвует в событии"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/companies/{companyId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventID, err := strconv.ParseInt(vars["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req := &getAvailableSlots.Request{
		EventID:   eventID,
		CompanyID: companyID,
		OnlyFree:  r.URL.Query().Get("onlyFree") == "true",
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEventNotFound):
			h.logger.Warn("GET /available-slots - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, getAvailableSlots.ErrCompanyNotParticipant):
			h.logger.Warn("GET /available-slots - Company not participant: event_id=%d, company_id=%d",
				eventID, companyID)
			handlers.RespondNotFound(w, msgNotParticipant)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEventID)

		default:
			h.logger.Error("GET /available-slots - Failed: event_id=%d, company_id=%d, error=%v",
				eventID, companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Returned %d slots: event_id=%d, company_id=%d",
		len(result.Slots), eventID, companyID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleByOffer GET /api/v1/offers/{offerId}/available-slots
//
// Вариант выборки по вакансии: событие и компания определяются
// слотами, привязанными к вакансии.
func (h *Handler) HandleByOffer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offers/{id}/available-slots - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	req := &getAvailableSlots.Request{
		OfferID:  &offerID,
		OnlyFree: r.URL.Query().Get("onlyFree") == "true",
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEventNotFound):
			h.logger.Warn("GET /offers/{id}/available-slots - Event not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidOfferID)

		default:
			h.logger.Error("GET /offers/{id}/available-slots - Failed: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offers/{id}/available-slots - Returned %d slots: offer_id=%d",
		len(result.Slots), offerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
