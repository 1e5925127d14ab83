package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 12, 11, 30, 0, 0, time.UTC)
	s := &Slot{StartTime: base, EndTime: base.Add(30 * time.Minute)} // 11:30-12:00

	// Частичное пересечение
	assert.True(t, s.Overlaps(base.Add(20*time.Minute), base.Add(50*time.Minute)))
	assert.True(t, s.Overlaps(base.Add(-10*time.Minute), base.Add(10*time.Minute)))
	// Полное вложение
	assert.True(t, s.Overlaps(base.Add(5*time.Minute), base.Add(15*time.Minute)))
	// Граничащие интервалы не пересекаются
	assert.False(t, s.Overlaps(base.Add(-30*time.Minute), base))
	assert.False(t, s.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)))
	// Полностью в стороне
	assert.False(t, s.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
}

func TestBookingStatusHelpers(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.IsConfirmed())
	assert.False(t, b.IsCancelled())

	b.Status = StatusCancelled
	assert.False(t, b.IsConfirmed())
	assert.True(t, b.IsCancelled())
}

func TestAvailableSlot(t *testing.T) {
	s := &AvailableSlot{Slot: Slot{Capacity: 3}, ConfirmedCount: 1}
	assert.Equal(t, 2, s.Available())
	assert.False(t, s.IsFull())

	s.ConfirmedCount = 3
	assert.Equal(t, 0, s.Available())
	assert.True(t, s.IsFull())

	// Счетчик выше вместимости не уводит доступность в минус
	s.ConfirmedCount = 5
	assert.Equal(t, 0, s.Available())
}

func TestStudentEligibleFor(t *testing.T) {
	regular := &Student{ID: 1}
	deprioritized := &Student{ID: 2, Deprioritized: true}

	assert.False(t, regular.EligibleFor(PhaseRegistration))
	assert.True(t, regular.EligibleFor(PhaseOne))
	assert.True(t, regular.EligibleFor(PhaseTwo))
	assert.False(t, regular.EligibleFor(PhaseClosed))

	assert.False(t, deprioritized.EligibleFor(PhaseOne))
	assert.True(t, deprioritized.EligibleFor(PhaseTwo))
}
