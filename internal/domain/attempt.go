package domain

import "time"

// Attempt error codes: классификация отказов для журнала попыток.
// Первые шесть — бизнес-отказы, NOT_FOUND — ошибка предусловия
// (неизвестный ID), INTERNAL_ERROR — инфраструктурный сбой.
const (
	CodePhaseClosed   = "PHASE_CLOSED"
	CodeDeprioritized = "DEPRIORITIZED"
	CodeLimitExceeded = "LIMIT_EXCEEDED"
	CodeSlotFull      = "SLOT_FULL"
	CodeSlotInactive  = "SLOT_INACTIVE"
	CodeTimeConflict  = "TIME_CONFLICT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// AttemptRecord одна запись append-only журнала попыток бронирования.
// Пишется для каждой попытки независимо от исхода и никогда не изменяется.
type AttemptRecord struct {
	ID        string // UUID
	StudentID int64
	SlotID    int64
	EventID   int64
	Phase     Phase
	Success   bool
	ErrorCode *string // nil при успехе
	Duration  time.Duration

	CreatedAt time.Time
}
