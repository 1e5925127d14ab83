package delete_event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
)

type fakeEventRepo struct {
	exists       bool
	ranges       int64
	participants int64

	deleted bool
}

func (f *fakeEventRepo) Delete(_ context.Context, _ int64) error {
	if !f.exists {
		return eventRepo.ErrEventNotFound
	}
	f.deleted = true
	return nil
}

func (f *fakeEventRepo) DeleteTimeRanges(_ context.Context, _ int64) (int64, error) {
	return f.ranges, nil
}

func (f *fakeEventRepo) DeleteParticipants(_ context.Context, _ int64) (int64, error) {
	return f.participants, nil
}

type fakeCountRepo struct{ count int64 }

func (f *fakeCountRepo) DeleteByEvent(_ context.Context, _ int64) (int64, error) {
	return f.count, nil
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_TearsDownEverything(t *testing.T) {
	events := &fakeEventRepo{exists: true, ranges: 2, participants: 4}
	slots := &fakeCountRepo{count: 12}
	bookings := &fakeCountRepo{count: 7}

	uc := NewUseCase(events, slots, bookings, inlineTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.BookingsDeleted)
	assert.Equal(t, int64(12), resp.SlotsDeleted)
	assert.Equal(t, int64(2), resp.TimeRangesDeleted)
	assert.Equal(t, int64(4), resp.ParticipantsDeleted)
	assert.True(t, events.deleted)
}

func TestExecute_EventNotFound(t *testing.T) {
	events := &fakeEventRepo{exists: false}
	uc := NewUseCase(events, &fakeCountRepo{}, &fakeCountRepo{}, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{EventID: 999})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeEventRepo{}, &fakeCountRepo{}, &fakeCountRepo{}, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{EventID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}
