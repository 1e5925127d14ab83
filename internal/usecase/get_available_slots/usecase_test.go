package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
	"github.com/avykhr/CareerDay-BookingService/pkg/ptr"
)

var (
	p1Start = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p1End   = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	p2Start = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	p2End   = time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)
)

type fakeEventRepo struct {
	events       map[int64]*domain.Event
	participants map[int64]map[int64]bool
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) IsActiveParticipant(_ context.Context, eventID, companyID int64) (bool, error) {
	return r.participants[eventID][companyID], nil
}

type fakeSlotRepo struct {
	slots []*domain.AvailableSlot
}

func (r *fakeSlotRepo) ListWithAvailability(_ context.Context, eventID, companyID int64) ([]*domain.AvailableSlot, error) {
	var out []*domain.AvailableSlot
	for _, s := range r.slots {
		if s.EventID == eventID && s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByOffer(_ context.Context, offerID int64) ([]*domain.AvailableSlot, error) {
	var out []*domain.AvailableSlot
	for _, s := range r.slots {
		if s.OfferID != nil && *s.OfferID == offerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:            1,
		Name:          "День карьеры",
		Phase1Start:   p1Start,
		Phase1End:     p1End,
		Phase2Start:   p2Start,
		Phase2End:     p2End,
		Phase1Ceiling: 3,
		Phase2Ceiling: 6,
		CurrentPhase:  domain.PhaseOne,
	}
}

func availableSlot(id, eventID, companyID int64, offerID *int64, start time.Time, capacity, confirmed int) *domain.AvailableSlot {
	return &domain.AvailableSlot{
		Slot: domain.Slot{
			ID:        id,
			EventID:   eventID,
			CompanyID: companyID,
			OfferID:   offerID,
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
			Capacity:  capacity,
			Active:    true,
		},
		ConfirmedCount: confirmed,
	}
}

func newUseCase(events *fakeEventRepo, slots *fakeSlotRepo, now time.Time) *UseCase {
	uc := NewUseCase(events, slots, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func TestExecute_ByCompany(t *testing.T) {
	events := &fakeEventRepo{
		events:       map[int64]*domain.Event{1: testEvent()},
		participants: map[int64]map[int64]bool{1: {10: true}},
	}
	slots := &fakeSlotRepo{slots: []*domain.AvailableSlot{
		availableSlot(1, 1, 10, nil, p1Start.Add(time.Hour), 2, 1),
		availableSlot(2, 1, 10, nil, p1Start.Add(2*time.Hour), 2, 2),
		availableSlot(3, 1, 99, nil, p1Start.Add(time.Hour), 2, 0),
	}}
	uc := newUseCase(events, slots, p1Start.Add(time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: 10})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, domain.PhaseOne, resp.Phase)
	assert.Equal(t, 1, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 0, resp.Slots[1].AvailableSpots)
}

func TestExecute_OnlyFreeHidesFullSlots(t *testing.T) {
	events := &fakeEventRepo{
		events:       map[int64]*domain.Event{1: testEvent()},
		participants: map[int64]map[int64]bool{1: {10: true}},
	}
	slots := &fakeSlotRepo{slots: []*domain.AvailableSlot{
		availableSlot(1, 1, 10, nil, p1Start.Add(time.Hour), 2, 1),
		availableSlot(2, 1, 10, nil, p1Start.Add(2*time.Hour), 2, 2),
	}}
	uc := newUseCase(events, slots, p1Start.Add(time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: 10, OnlyFree: true})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(1), resp.Slots[0].ID)
}

func TestExecute_ByOffer(t *testing.T) {
	events := &fakeEventRepo{
		events:       map[int64]*domain.Event{1: testEvent()},
		participants: map[int64]map[int64]bool{1: {10: true}},
	}
	slots := &fakeSlotRepo{slots: []*domain.AvailableSlot{
		availableSlot(1, 1, 10, ptr.Ptr(int64(7)), p1Start.Add(time.Hour), 2, 0),
		availableSlot(2, 1, 10, ptr.Ptr(int64(8)), p1Start.Add(2*time.Hour), 2, 0),
	}}
	uc := newUseCase(events, slots, p1Start.Add(time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{OfferID: ptr.Ptr(int64(7))})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(1), resp.Slots[0].ID)
	require.NotNil(t, resp.Slots[0].OfferID)
	assert.Equal(t, int64(7), *resp.Slots[0].OfferID)
}

func TestExecute_ByOfferNoSlots(t *testing.T) {
	events := &fakeEventRepo{events: map[int64]*domain.Event{1: testEvent()}}
	uc := newUseCase(events, &fakeSlotRepo{}, p1Start.Add(time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{OfferID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DisplayPhase(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		override bool
		want     domain.Phase
	}{
		{"before phase 1", p1Start.Add(-time.Hour), false, domain.PhaseRegistration},
		{"inside phase 1", p1Start.Add(time.Hour), false, domain.PhaseOne},
		{"gap between windows", p1End.Add(time.Hour), false, domain.PhaseRegistration},
		{"inside phase 2", p2Start.Add(time.Hour), false, domain.PhaseTwo},
		{"after phase 2", p2End.Add(time.Hour), false, domain.PhaseClosed},
		{"override freezes cached phase", p2End.Add(time.Hour), true, domain.PhaseOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEvent()
			e.PhaseOverride = tt.override

			events := &fakeEventRepo{
				events:       map[int64]*domain.Event{1: e},
				participants: map[int64]map[int64]bool{1: {10: true}},
			}
			uc := newUseCase(events, &fakeSlotRepo{}, tt.now)

			resp, err := uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Phase)
		})
	}
}

func TestExecute_EventNotFound(t *testing.T) {
	uc := newUseCase(&fakeEventRepo{events: map[int64]*domain.Event{}}, &fakeSlotRepo{}, p1Start)

	_, err := uc.Execute(context.Background(), &Request{EventID: 404, CompanyID: 10})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestExecute_CompanyNotParticipant(t *testing.T) {
	events := &fakeEventRepo{
		events:       map[int64]*domain.Event{1: testEvent()},
		participants: map[int64]map[int64]bool{1: {}},
	}
	uc := newUseCase(events, &fakeSlotRepo{}, p1Start)

	_, err := uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: 10})
	require.ErrorIs(t, err, ErrCompanyNotParticipant)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{"nil request", nil, true},
		{"valid by company", &Request{EventID: 1, CompanyID: 10}, false},
		{"valid by offer", &Request{OfferID: ptr.Ptr(int64(7))}, false},
		{"zero event", &Request{CompanyID: 10}, true},
		{"zero company", &Request{EventID: 1}, true},
		{"negative offer", &Request{OfferID: ptr.Ptr(int64(-1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
