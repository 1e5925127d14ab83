package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
)

// UseCase use case генерации интервью-слотов события.
//
// Каждое временное окно события нарезается на слоты фиксированной длины
// с буфером между ними, для каждой активной компании. Регенерация
// идемпотентна: слоты с бронированиями не трогаются, свободные
// пересоздаются по актуальным настройкам.
type UseCase struct {
	eventRepo EventRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo: eventRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute генерирует слоты для всех активных компаний события или, если
// в запросе указана компания, только для нее. Вся генерация выполняется
// в одной транзакции: конкурентное бронирование не может попасть в слот,
// который вот-вот будет пересоздан.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GenerateSlots: event=%d", req.EventID)

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		event, err := uc.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}

		ranges, err := uc.eventRepo.GetTimeRanges(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to get time ranges: %v", ErrInternal, err)
		}
		if len(ranges) == 0 {
			return ErrNoTimeRanges
		}

		companies, err := uc.eventRepo.GetActiveCompanies(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to get active companies: %v", ErrInternal, err)
		}
		if len(companies) == 0 {
			return ErrNoActiveCompanies
		}

		// Точечная регенерация: только сетка указанной компании
		if req.CompanyID != nil {
			if !containsCompany(companies, *req.CompanyID) {
				return ErrCompanyNotParticipant
			}
			companies = []int64{*req.CompanyID}
		}

		starts := partitionRanges(ranges, event.SlotDurationMinutes, event.BufferMinutes)

		resp = &Response{
			RangesProcessed:    len(ranges),
			CompaniesProcessed: len(companies),
		}

		duration := time.Duration(event.SlotDurationMinutes) * time.Minute

		for _, companyID := range companies {
			booked, err := uc.slotRepo.ListBookedStarts(txCtx, req.EventID, companyID)
			if err != nil {
				return fmt.Errorf("%w: failed to list booked slots: %v", ErrInternal, err)
			}
			resp.SlotsPreserved += len(booked)

			// Свободные слоты удаляются и создаются заново: смена
			// длительности или вместимости применяется только к ним
			deleted, err := uc.slotRepo.DeleteUnbooked(txCtx, req.EventID, companyID)
			if err != nil {
				return fmt.Errorf("%w: failed to delete unbooked slots: %v", ErrInternal, err)
			}
			resp.SlotsReplaced += deleted

			slots := make([]*domain.Slot, 0, len(starts))
			for _, start := range starts {
				slots = append(slots, &domain.Slot{
					EventID:   req.EventID,
					CompanyID: companyID,
					StartTime: start,
					EndTime:   start.Add(duration),
					Capacity:  event.SlotsPerTime,
					Active:    true,
				})
			}

			// ON CONFLICT DO NOTHING: занятые слоты на тех же start_time
			// пережили DeleteUnbooked и вставкой не затираются
			created, err := uc.slotRepo.CreateBatch(txCtx, slots)
			if err != nil {
				return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
			}
			resp.SlotsCreated += created
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: event=%d created=%d preserved=%d replaced=%d (%d ranges, %d companies)",
		req.EventID, resp.SlotsCreated, resp.SlotsPreserved, resp.SlotsReplaced,
		resp.RangesProcessed, resp.CompaniesProcessed)

	return resp, nil
}

func containsCompany(companies []int64, id int64) bool {
	for _, c := range companies {
		if c == id {
			return true
		}
	}
	return false
}

// partitionRanges нарезает временные окна на времена начала слотов.
// Слот входит в нарезку, только если целиком помещается в окно;
// буфер после последнего слота окна не требуется.
func partitionRanges(ranges []*domain.TimeRange, durationMinutes, bufferMinutes int) []time.Time {
	duration := time.Duration(durationMinutes) * time.Minute
	step := duration + time.Duration(bufferMinutes)*time.Minute

	var starts []time.Time
	for _, tr := range ranges {
		if !tr.IsValid() {
			continue
		}

		for cursor := tr.Start; !cursor.Add(duration).After(tr.End); cursor = cursor.Add(step) {
			starts = append(starts, cursor)
		}
	}

	return starts
}
