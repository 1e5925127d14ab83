package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	bookingRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/slot"
	"github.com/avykhr/CareerDay-BookingService/internal/integrations/studentservice"
	"github.com/avykhr/CareerDay-BookingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByStudent(_ context.Context, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.StudentID != studentID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.EventID != filter.EventID {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && b.Status != domain.StatusConfirmed {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, actorID int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status == domain.StatusCancelled {
		return bookingRepo.ErrAlreadyCancelled
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledBy = &actorID
	b.CancelledAt = &now
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

type fakeStudentClient struct {
	profiles map[int64]*studentservice.Profile
	degraded bool
}

func (f *fakeStudentClient) GetProfileWithGracefulDegradation(_ context.Context, studentID int64) (*studentservice.Profile, error) {
	if f.degraded {
		return nil, studentservice.ErrServiceDegraded
	}
	p, ok := f.profiles[studentID]
	if !ok {
		return nil, studentservice.ErrStudentNotFound
	}
	return p, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var slotStart = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func newFixture() (*fakeBookingRepo, *fakeStudentClient, *Service) {
	bookingsStore := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, SlotID: 100, StudentID: 42, EventID: 1, Status: domain.StatusConfirmed, Phase: domain.PhaseOne},
		2: {ID: 2, SlotID: 101, StudentID: 7, EventID: 1, Status: domain.StatusConfirmed, Phase: domain.PhaseTwo},
	}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		100: {ID: 100, EventID: 1, CompanyID: 10, StartTime: slotStart, EndTime: slotStart.Add(30 * time.Minute)},
		101: {ID: 101, EventID: 1, CompanyID: 10, StartTime: slotStart.Add(time.Hour), EndTime: slotStart.Add(90 * time.Minute)},
	}}
	client := &fakeStudentClient{profiles: map[int64]*studentservice.Profile{
		42: {ID: 42, FullName: "Anna Petrova", Email: "anna@example.edu"},
		7:  {ID: 7, FullName: "Ivan Sidorov", Email: "ivan@example.edu"},
	}}

	return bookingsStore, client, NewService(bookingsStore, slots, client, nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	_, _, svc := newFixture()

	resp, err := svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.CompanyID)
	assert.Equal(t, slotStart, resp.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestGetByID_AccessDenied(t *testing.T) {
	_, _, svc := newFixture()

	_, err := svc.GetByID(context.Background(), 1, 7, false)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAny(t *testing.T) {
	_, _, svc := newFixture()

	resp, err := svc.GetByID(context.Background(), 1, 999, true)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.StudentID)
}

func TestGetByID_NotFound(t *testing.T) {
	_, _, svc := newFixture()

	_, err := svc.GetByID(context.Background(), 777, 42, false)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetStudentBookings(t *testing.T) {
	_, _, svc := newFixture()

	resp, err := svc.GetStudentBookings(context.Background(), &models.GetStudentBookingsRequest{StudentID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestGetStudentBookings_InvalidStatus(t *testing.T) {
	_, _, svc := newFixture()

	bad := "pending"
	_, err := svc.GetStudentBookings(context.Background(), &models.GetStudentBookingsRequest{
		StudentID: 42,
		Status:    &bad,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCompanyBookings_EnrichesProfiles(t *testing.T) {
	_, _, svc := newFixture()

	resp, err := svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		EventID:   1,
		CompanyID: 10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	for _, b := range resp.Bookings {
		require.NotNil(t, b.StudentName)
		assert.NotEmpty(t, *b.StudentName)
	}
}

func TestGetCompanyBookings_DegradedProfileService(t *testing.T) {
	_, client, svc := newFixture()
	client.degraded = true

	resp, err := svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		EventID:   1,
		CompanyID: 10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	// Профили недоступны — ответ отдается без обогащения
	for _, b := range resp.Bookings {
		assert.Nil(t, b.StudentName)
	}
}

func TestCancel_Owner(t *testing.T) {
	store, _, svc := newFixture()

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID:            42,
		CancellationReason: "schedule conflict",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, store.bookings[1].Status)
	require.NotNil(t, store.bookings[1].CancelledBy)
	assert.Equal(t, int64(42), *store.bookings[1].CancelledBy)
}

func TestCancel_AlreadyCancelledIsNoop(t *testing.T) {
	store, _, svc := newFixture()
	store.bookings[1].Status = domain.StatusCancelled

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID:            42,
		CancellationReason: "again",
	})
	require.NoError(t, err)
}

func TestCancel_AccessDenied(t *testing.T) {
	store, _, svc := newFixture()

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID:            7,
		CancellationReason: "not mine",
	})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, store.bookings[1].Status)
}

func TestCancel_Admin(t *testing.T) {
	store, _, svc := newFixture()

	err := svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{
		ActorID:            999,
		IsAdmin:            true,
		CancellationReason: "company withdrew",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, store.bookings[2].Status)
}
