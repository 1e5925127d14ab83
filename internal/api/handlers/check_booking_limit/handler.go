package check_booking_limit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
	"github.com/avykhr/CareerDay-BookingService/internal/api/middleware"
	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/check_booking_limit"
)

const (
	msgInvalidEventID  = "некорректный ID события"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgEventNotFound   = "событие не найдено"
	msgStudentNotFound = "студент не найден"
	msgInvalidInput    = "некорректные входные данные"
)

type Handler struct {
	useCase CheckBookingLimitUseCase
	logger  Logger
}

func NewHandler(useCase CheckBookingLimitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/booking-limit
//
// Возвращает сколько бронирований студент еще может сделать в текущей
// фазе. Ответ советующий: финальная проверка выполняется при бронировании.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventID, err := strconv.ParseInt(vars["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /events/{id}/booking-limit - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /events/{id}/booking-limit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &usecase.Request{
		StudentID: userID,
		EventID:   eventID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			h.logger.Warn("GET /events/{id}/booking-limit - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, usecase.ErrStudentNotFound):
			h.logger.Warn("GET /events/{id}/booking-limit - Student not found: student_id=%d", userID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("GET /events/{id}/booking-limit - Invalid input: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /events/{id}/booking-limit - Failed: event_id=%d, student_id=%d, error=%v",
				eventID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /events/{id}/booking-limit - Checked: event_id=%d, student_id=%d, can_book=%t",
		eventID, userID, result.CanBook)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
