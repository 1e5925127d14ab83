package cancel_booking

import "github.com/avykhr/CareerDay-BookingService/internal/service/bookings/models"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actorID int64, isAdmin bool) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ActorID:            actorID,
		IsAdmin:            isAdmin,
		CancellationReason: r.CancellationReason,
	}
}
