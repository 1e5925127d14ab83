package check_booking_limit

import (
	"context"

	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/check_booking_limit"
)

type CheckBookingLimitUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
