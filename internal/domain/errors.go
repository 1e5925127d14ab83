package domain

import "errors"

var (
	// ErrInvalidPhaseWindow возвращается, когда окна фаз пересекаются
	// или заданы в обратном порядке
	ErrInvalidPhaseWindow = errors.New("domain: phase-1 window must precede phase-2 window")

	// ErrInvalidCeilings возвращается, когда потолки бронирований отрицательны
	// или потолок второй фазы меньше потолка первой
	ErrInvalidCeilings = errors.New("domain: phase-2 ceiling must be >= phase-1 ceiling >= 0")

	// ErrInvalidTimeRange возвращается для диапазона с end <= start
	ErrInvalidTimeRange = errors.New("domain: time range end must be after start")
)
