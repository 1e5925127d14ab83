package domain

import "time"

// Slot represents a bookable interview time unit owned by one company
type Slot struct {
	ID        int64
	EventID   int64
	CompanyID int64
	OfferID   *int64 // опциональная привязка к вакансии
	StartTime time.Time
	EndTime   time.Time
	Capacity  int
	Active    bool

	CreatedAt time.Time
}

// Overlaps reports whether the slot intersects [start, end) as half-open
// intervals. Слоты, граничащие впритык, не пересекаются.
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// AvailableSlot is a slot with its live availability attached
type AvailableSlot struct {
	Slot
	ConfirmedCount int
}

// Available returns the number of free seats in the slot
func (s *AvailableSlot) Available() int {
	free := s.Capacity - s.ConfirmedCount
	if free < 0 {
		return 0
	}
	return free
}

// IsFull returns true if the slot has no free seats
func (s *AvailableSlot) IsFull() bool {
	return s.Available() == 0
}
