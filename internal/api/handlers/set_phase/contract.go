package set_phase

import (
	"context"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

type PhaseService interface {
	SetPhase(ctx context.Context, eventID int64, phase domain.Phase) error
	EnableAuto(ctx context.Context, eventID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
