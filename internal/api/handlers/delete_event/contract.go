package delete_event

import (
	"context"

	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/delete_event"
)

type DeleteEventUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
