package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(window time.Duration, limit int) (*Limiter, *time.Time) {
	l := New(window, limit)
	current := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLimiter_AllowsUnderLimit(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 3)

	assert.True(t, l.Allow("student-1", "10.0.0.1"))
	assert.True(t, l.Record("student-1", "10.0.0.1"))
	assert.True(t, l.Record("student-1", "10.0.0.1"))
	assert.True(t, l.Allow("student-1", "10.0.0.1"))
}

func TestLimiter_DeniesAtLimit(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Record("student-1", "10.0.0.1"))
	}

	assert.False(t, l.Allow("student-1", "10.0.0.1"))
	assert.False(t, l.Record("student-1", "10.0.0.1"))
}

func TestLimiter_WindowSlides(t *testing.T) {
	l, current := newTestLimiter(time.Minute, 2)

	assert.True(t, l.Record("student-1", "10.0.0.1"))
	assert.True(t, l.Record("student-1", "10.0.0.1"))
	assert.False(t, l.Allow("student-1", "10.0.0.1"))

	// Первая попытка выходит за окно
	*current = current.Add(61 * time.Second)
	assert.True(t, l.Allow("student-1", "10.0.0.1"))
	assert.True(t, l.Record("student-1", "10.0.0.1"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Record("student-1", "10.0.0.1"))
	assert.False(t, l.Allow("student-1", "10.0.0.1"))

	// Другой origin и другая identity не затронуты
	assert.True(t, l.Allow("student-1", "10.0.0.2"))
	assert.True(t, l.Allow("student-2", "10.0.0.1"))
}

func TestLimiter_ResetClearsCounter(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Record("student-1", "10.0.0.1"))
	assert.False(t, l.Allow("student-1", "10.0.0.1"))

	l.Reset("student-1", "10.0.0.1")
	assert.True(t, l.Allow("student-1", "10.0.0.1"))
}
