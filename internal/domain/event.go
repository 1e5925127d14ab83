package domain

import "time"

// Phase represents the admission phase of a recruiting event
type Phase int

const (
	// PhaseRegistration — событие создано, бронирование закрыто
	PhaseRegistration Phase = 0
	// PhaseOne — открыта первая фаза с меньшим потолком бронирований
	PhaseOne Phase = 1
	// PhaseTwo — открыта вторая фаза, потолок кумулятивный
	PhaseTwo Phase = 2
	// PhaseClosed — событие завершено, бронирование закрыто
	PhaseClosed Phase = 3
)

// IsOpen returns true if students may book during this phase
func (p Phase) IsOpen() bool {
	return p == PhaseOne || p == PhaseTwo
}

// Event represents one recruiting occasion with its phase schedule
type Event struct {
	ID        int64
	Name      string
	EventDate time.Time

	// Slot generation defaults
	SlotDurationMinutes int
	BufferMinutes       int
	SlotsPerTime        int // capacity of each generated slot

	// Phase windows and ceilings
	Phase1Start   time.Time
	Phase1End     time.Time
	Phase2Start   time.Time
	Phase2End     time.Time
	Phase1Ceiling int
	Phase2Ceiling int

	// Phase state: CurrentPhase кешируется, PhaseVersion инкрементируется
	// при каждом переходе и читается в одной транзакции с проверкой лимитов
	CurrentPhase  Phase
	PhaseOverride bool
	PhaseVersion  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EvaluatePhase returns the phase dictated by the wall clock.
// Не учитывает ручной override — это решает вызывающая сторона.
func (e *Event) EvaluatePhase(now time.Time) Phase {
	switch {
	case now.Before(e.Phase1Start):
		return PhaseRegistration
	case now.Before(e.Phase1End):
		return PhaseOne
	case now.Before(e.Phase2Start):
		// Пауза между окнами фаз: бронирование закрыто
		return PhaseRegistration
	case now.Before(e.Phase2End):
		return PhaseTwo
	default:
		return PhaseClosed
	}
}

// CeilingFor returns the cumulative booking ceiling for the given phase
func (e *Event) CeilingFor(phase Phase) int {
	switch phase {
	case PhaseOne:
		return e.Phase1Ceiling
	case PhaseTwo:
		return e.Phase2Ceiling
	default:
		return 0
	}
}

// Validate checks the event's phase schedule invariants
func (e *Event) Validate() error {
	if !e.Phase1Start.Before(e.Phase1End) {
		return ErrInvalidPhaseWindow
	}
	if e.Phase1End.After(e.Phase2Start) {
		return ErrInvalidPhaseWindow
	}
	if !e.Phase2Start.Before(e.Phase2End) {
		return ErrInvalidPhaseWindow
	}
	if e.Phase1Ceiling < 0 || e.Phase2Ceiling < e.Phase1Ceiling {
		return ErrInvalidCeilings
	}
	return nil
}

// TimeRange represents a raw bookable window of an event, the input to
// slot generation
type TimeRange struct {
	ID      int64
	EventID int64
	Start   time.Time
	End     time.Time

	CreatedAt time.Time
}

// IsValid returns true if the range is well-formed
func (r *TimeRange) IsValid() bool {
	return r.Start.Before(r.End)
}

// EventParticipant связывает компанию с событием; слоты генерируются
// только для активных участников
type EventParticipant struct {
	EventID   int64
	CompanyID int64
	Active    bool
}
