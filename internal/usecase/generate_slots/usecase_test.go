package generate_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
	"github.com/avykhr/CareerDay-BookingService/pkg/ptr"
)

type fakeEventRepo struct {
	event     *domain.Event
	ranges    []*domain.TimeRange
	companies []int64
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, eventRepo.ErrEventNotFound
	}
	cp := *f.event
	return &cp, nil
}

func (f *fakeEventRepo) GetTimeRanges(_ context.Context, _ int64) ([]*domain.TimeRange, error) {
	return f.ranges, nil
}

func (f *fakeEventRepo) GetActiveCompanies(_ context.Context, _ int64) ([]int64, error) {
	return f.companies, nil
}

// fakeSlotRepo повторяет семантику хранилища: уникальность по
// (event, company, start_time), DeleteUnbooked не трогает слоты с
// историей бронирований любого статуса
type fakeSlotRepo struct {
	slots    map[string]*domain.Slot
	bookings map[string][]domain.BookingStatus
	nextID   int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:    make(map[string]*domain.Slot),
		bookings: make(map[string][]domain.BookingStatus),
	}
}

func slotKey(eventID, companyID int64, start time.Time) string {
	return fmt.Sprintf("%d/%d/%s", eventID, companyID, start.Format(time.RFC3339))
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) (int64, error) {
	var created int64
	for _, s := range slots {
		key := slotKey(s.EventID, s.CompanyID, s.StartTime)
		if _, exists := f.slots[key]; exists {
			continue // ON CONFLICT DO NOTHING
		}
		f.nextID++
		cp := *s
		cp.ID = f.nextID
		f.slots[key] = &cp
		created++
	}
	return created, nil
}

func (f *fakeSlotRepo) ListBookedStarts(_ context.Context, eventID, companyID int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for key, s := range f.slots {
		if s.EventID == eventID && s.CompanyID == companyID && len(f.bookings[key]) > 0 {
			out[s.ID] = true
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) DeleteUnbooked(_ context.Context, eventID, companyID int64) (int64, error) {
	var deleted int64
	for key, s := range f.slots {
		if s.EventID == eventID && s.CompanyID == companyID && len(f.bookings[key]) == 0 {
			delete(f.slots, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeSlotRepo) markBooked(eventID, companyID int64, start time.Time) {
	key := slotKey(eventID, companyID, start)
	f.bookings[key] = append(f.bookings[key], domain.StatusConfirmed)
}

func (f *fakeSlotRepo) markCancelled(eventID, companyID int64, start time.Time) {
	key := slotKey(eventID, companyID, start)
	f.bookings[key] = append(f.bookings[key], domain.StatusCancelled)
}

func (f *fakeSlotRepo) companyIDs(companyID int64) map[int64]bool {
	out := make(map[int64]bool)
	for _, s := range f.slots {
		if s.CompanyID == companyID {
			out[s.ID] = true
		}
	}
	return out
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var rangeStart = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func newFixture(companies ...int64) (*fakeEventRepo, *fakeSlotRepo, *UseCase) {
	events := &fakeEventRepo{
		event: &domain.Event{
			ID:                  1,
			SlotDurationMinutes: 30,
			BufferMinutes:       5,
			SlotsPerTime:        2,
		},
		ranges: []*domain.TimeRange{
			{ID: 1, EventID: 1, Start: rangeStart, End: rangeStart.Add(2 * time.Hour)},
		},
		companies: companies,
	}
	slots := newFakeSlotRepo()
	uc := NewUseCase(events, slots, inlineTxManager{}, nopLogger{})
	return events, slots, uc
}

func TestExecute_GeneratesSlotsForAllCompanies(t *testing.T) {
	_, slots, uc := newFixture(10, 20)

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	// Окно 10:00-12:00, слот 30 мин + буфер 5: старты 10:00, 10:35, 11:10
	assert.Equal(t, 1, resp.RangesProcessed)
	assert.Equal(t, 2, resp.CompaniesProcessed)
	assert.Equal(t, int64(6), resp.SlotsCreated)
	assert.Equal(t, 0, resp.SlotsPreserved)
	assert.Equal(t, int64(0), resp.SlotsReplaced)
	assert.Len(t, slots.slots, 6)

	for _, s := range slots.slots {
		assert.Equal(t, 2, s.Capacity)
		assert.True(t, s.Active)
		assert.Equal(t, 30*time.Minute, s.EndTime.Sub(s.StartTime))
	}
}

func TestExecute_RegenerationIsIdempotent(t *testing.T) {
	_, slots, uc := newFixture(10)

	first, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(3), first.SlotsCreated)

	second, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	// Свободные слоты пересозданы один в один
	assert.Equal(t, int64(3), second.SlotsReplaced)
	assert.Equal(t, int64(3), second.SlotsCreated)
	assert.Equal(t, 0, second.SlotsPreserved)
	assert.Len(t, slots.slots, 3)
}

func TestExecute_RegenerationPreservesBookedSlots(t *testing.T) {
	_, slots, uc := newFixture(10)

	_, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	slots.markBooked(1, 10, rangeStart.Add(35*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.SlotsPreserved)
	assert.Equal(t, int64(2), resp.SlotsReplaced)
	// Занятый start_time конфликтует при вставке и не затирается
	assert.Equal(t, int64(2), resp.SlotsCreated)
	assert.Len(t, slots.slots, 3)
}

func TestExecute_RegenerationPreservesCancelledBookingSlots(t *testing.T) {
	_, slots, uc := newFixture(10)

	_, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	// Единственное бронирование слота отменено: история остается,
	// слот переживает регенерацию и попадает в отчет
	slots.markCancelled(1, 10, rangeStart.Add(35*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.SlotsPreserved)
	assert.Equal(t, int64(2), resp.SlotsReplaced)
	assert.Equal(t, int64(2), resp.SlotsCreated)
	assert.Len(t, slots.slots, 3)
}

func TestExecute_SingleCompanyRegeneration(t *testing.T) {
	_, slots, uc := newFixture(10, 20)

	_, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)
	untouched := slots.companyIDs(20)

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: ptr.Ptr(int64(10))})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CompaniesProcessed)
	assert.Equal(t, int64(3), resp.SlotsReplaced)
	assert.Equal(t, int64(3), resp.SlotsCreated)
	assert.Len(t, slots.slots, 6)

	// Сетка второй компании не пересоздавалась
	assert.Equal(t, untouched, slots.companyIDs(20))
}

func TestExecute_CompanyNotParticipant(t *testing.T) {
	_, _, uc := newFixture(10)

	_, err := uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: ptr.Ptr(int64(99))})
	require.ErrorIs(t, err, ErrCompanyNotParticipant)

	_, err = uc.Execute(context.Background(), &Request{EventID: 1, CompanyID: ptr.Ptr(int64(-1))})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotMustFitEntirelyInRange(t *testing.T) {
	events, slots, uc := newFixture(10)
	// Окно 10:00-10:45 при слоте 30+5: помещается только старт 10:00
	events.ranges = []*domain.TimeRange{
		{ID: 1, EventID: 1, Start: rangeStart, End: rangeStart.Add(45 * time.Minute)},
	}

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.SlotsCreated)
	assert.Len(t, slots.slots, 1)
}

func TestExecute_MultipleRanges(t *testing.T) {
	events, _, uc := newFixture(10)
	events.ranges = []*domain.TimeRange{
		{ID: 1, EventID: 1, Start: rangeStart, End: rangeStart.Add(65 * time.Minute)},
		{ID: 2, EventID: 1, Start: rangeStart.Add(3 * time.Hour), End: rangeStart.Add(3*time.Hour + 65*time.Minute)},
	}

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.NoError(t, err)

	// В каждом окне 65 минут помещаются старты :00 и :35
	assert.Equal(t, 2, resp.RangesProcessed)
	assert.Equal(t, int64(4), resp.SlotsCreated)
}

func TestExecute_NoTimeRanges(t *testing.T) {
	events, _, uc := newFixture(10)
	events.ranges = nil

	_, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.ErrorIs(t, err, ErrNoTimeRanges)
}

func TestExecute_NoActiveCompanies(t *testing.T) {
	_, _, uc := newFixture()

	_, err := uc.Execute(context.Background(), &Request{EventID: 1})
	require.ErrorIs(t, err, ErrNoActiveCompanies)
}

func TestExecute_EventNotFound(t *testing.T) {
	_, _, uc := newFixture(10)

	_, err := uc.Execute(context.Background(), &Request{EventID: 999})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestPartitionRanges(t *testing.T) {
	ranges := []*domain.TimeRange{
		{Start: rangeStart, End: rangeStart.Add(2 * time.Hour)},
	}

	starts := partitionRanges(ranges, 30, 5)
	require.Len(t, starts, 3)
	assert.Equal(t, rangeStart, starts[0])
	assert.Equal(t, rangeStart.Add(35*time.Minute), starts[1])
	assert.Equal(t, rangeStart.Add(70*time.Minute), starts[2])

	// Нулевой буфер: плотная нарезка
	starts = partitionRanges(ranges, 30, 0)
	assert.Len(t, starts, 4)

	// Некорректное окно пропускается
	starts = partitionRanges([]*domain.TimeRange{
		{Start: rangeStart.Add(time.Hour), End: rangeStart},
	}, 30, 5)
	assert.Empty(t, starts)
}
