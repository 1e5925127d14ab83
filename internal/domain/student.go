package domain

import "time"

// Student carries the booking-eligibility state of one student.
// Профиль (имя, резюме и т.д.) живет во внешнем StudentService.
type Student struct {
	ID int64

	// Deprioritized исключает студента из первой фазы целиком:
	// бронирование возможно только после открытия второй фазы
	Deprioritized bool

	CreatedAt time.Time
}

// EligibleFor returns true if the student may book during the given phase
func (s *Student) EligibleFor(phase Phase) bool {
	if !phase.IsOpen() {
		return false
	}
	if phase == PhaseOne && s.Deprioritized {
		return false
	}
	return true
}
