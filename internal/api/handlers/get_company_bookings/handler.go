package get_company_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
	"github.com/avykhr/CareerDay-BookingService/internal/service/bookings"
	"github.com/avykhr/CareerDay-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidEventID   = "некорректный ID события"
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidFilter    = "некорректный фильтр"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/companies/{companyId}/bookings
//
// Query параметры:
//   - status: фильтр по статусу (confirmed, cancelled)
//   - includeInactive: включить отмененные бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventID, err := strconv.ParseInt(vars["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/bookings - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/bookings - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req := &models.GetCompanyBookingsRequest{
		EventID:         eventID,
		CompanyID:       companyID,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetCompanyBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/bookings - Invalid filter: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /companies/{id}/bookings - Failed: event_id=%d, company_id=%d, error=%v",
				eventID, companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/bookings - Returned %d bookings: event_id=%d, company_id=%d",
		len(result.Bookings), eventID, companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
