package check_booking_limit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
	studentRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/student"
)

type fixture struct {
	event     *domain.Event
	student   *domain.Student
	intervals []*domain.BookedInterval
}

func (f *fixture) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, eventRepo.ErrEventNotFound
	}
	cp := *f.event
	return &cp, nil
}

type studentGetter fixture

func (f *studentGetter) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	if f.student == nil || f.student.ID != id {
		return nil, studentRepo.ErrStudentNotFound
	}
	cp := *f.student
	return &cp, nil
}

func (f *fixture) GetConfirmedIntervals(_ context.Context, _, _ int64) ([]*domain.BookedInterval, error) {
	return f.intervals, nil
}

type passthroughPhaseCtl struct{}

func (passthroughPhaseCtl) EnsureCurrent(_ context.Context, e *domain.Event) (domain.Phase, error) {
	return e.CurrentPhase, nil
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newFixture(phase domain.Phase, deprioritized bool, booked int) *fixture {
	f := &fixture{
		event: &domain.Event{
			ID:            1,
			Phase1Ceiling: 3,
			Phase2Ceiling: 6,
			CurrentPhase:  phase,
		},
		student: &domain.Student{ID: 42, Deprioritized: deprioritized},
	}
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	for i := 0; i < booked; i++ {
		f.intervals = append(f.intervals, &domain.BookedInterval{
			BookingID: int64(i + 1),
			SlotID:    int64(100 + i),
			Start:     start.Add(time.Duration(i) * time.Hour),
			End:       start.Add(time.Duration(i)*time.Hour + 20*time.Minute),
		})
	}
	return f
}

func newTestUseCase(f *fixture) *UseCase {
	return NewUseCase(
		f,
		(*studentGetter)(f),
		f,
		passthroughPhaseCtl{},
		inlineTxManager{},
		nopLogger{},
	)
}

func TestExecute_PhaseOneWithRoom(t *testing.T) {
	f := newFixture(domain.PhaseOne, false, 1)
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 1})
	require.NoError(t, err)
	assert.True(t, resp.CanBook)
	assert.Equal(t, 1, resp.CurrentCount)
	assert.Equal(t, 3, resp.MaxAllowed)
	assert.Equal(t, domain.PhaseOne, resp.Phase)
}

func TestExecute_PhaseOneAtCeiling(t *testing.T) {
	f := newFixture(domain.PhaseOne, false, 3)
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 1})
	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, 3, resp.CurrentCount)
	assert.Equal(t, 3, resp.MaxAllowed)
}

func TestExecute_PhaseTwoCumulative(t *testing.T) {
	// Три брони из первой фазы учитываются в потолке второй
	f := newFixture(domain.PhaseTwo, false, 3)
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 1})
	require.NoError(t, err)
	assert.True(t, resp.CanBook)
	assert.Equal(t, 3, resp.CurrentCount)
	assert.Equal(t, 6, resp.MaxAllowed)
}

func TestExecute_DeprioritizedInPhaseOne(t *testing.T) {
	f := newFixture(domain.PhaseOne, true, 0)
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 1})
	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, 0, resp.MaxAllowed)
	assert.NotEmpty(t, resp.Message)
}

func TestExecute_DeprioritizedInPhaseTwo(t *testing.T) {
	f := newFixture(domain.PhaseTwo, true, 0)
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 1})
	require.NoError(t, err)
	assert.True(t, resp.CanBook)
	assert.Equal(t, 6, resp.MaxAllowed)
}

func TestExecute_ClosedPhases(t *testing.T) {
	for _, phase := range []domain.Phase{domain.PhaseRegistration, domain.PhaseClosed} {
		f := newFixture(phase, false, 0)
		uc := newTestUseCase(f)

		resp, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 1})
		require.NoError(t, err)
		assert.False(t, resp.CanBook)
		assert.Equal(t, 0, resp.MaxAllowed)
	}
}

func TestExecute_EventNotFound(t *testing.T) {
	f := newFixture(domain.PhaseOne, false, 0)
	uc := newTestUseCase(f)

	_, err := uc.Execute(context.Background(), &Request{StudentID: 42, EventID: 999})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(domain.PhaseOne, false, 0)
	uc := newTestUseCase(f)

	_, err := uc.Execute(context.Background(), &Request{StudentID: 0, EventID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
