package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
)

// UseCase use case получения доступных слотов.
//
// Чтение без транзакции: доступность вычисляется живым COUNT по
// подтвержденным бронированиям, а фаза показывается расчетная.
// Ответ носит справочный характер — место гарантирует только само
// бронирование.
type UseCase struct {
	eventRepo    EventRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:    eventRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты с живой доступностью: по паре событие-компания
// или по вакансии.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if req.OfferID != nil {
		return uc.byOffer(ctx, req)
	}
	return uc.byCompany(ctx, req)
}

func (uc *UseCase) byCompany(ctx context.Context, req *Request) (*Response, error) {
	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	active, err := uc.eventRepo.IsActiveParticipant(ctx, req.EventID, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check participant: %v", ErrInternal, err)
	}
	if !active {
		return nil, ErrCompanyNotParticipant
	}

	slots, err := uc.slotRepo.ListWithAvailability(ctx, req.EventID, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	return uc.buildResponse(event, slots, req.OnlyFree), nil
}

func (uc *UseCase) byOffer(ctx context.Context, req *Request) (*Response, error) {
	slots, err := uc.slotRepo.ListByOffer(ctx, *req.OfferID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots by offer: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		return &Response{Slots: []Slot{}}, nil
	}

	event, err := uc.eventRepo.GetByID(ctx, slots[0].EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	return uc.buildResponse(event, slots, req.OnlyFree), nil
}

func (uc *UseCase) buildResponse(event *domain.Event, slots []*domain.AvailableSlot, onlyFree bool) *Response {
	resp := &Response{
		Phase: uc.displayPhase(event),
		Slots: make([]Slot, 0, len(slots)),
	}

	for _, s := range slots {
		if onlyFree && s.IsFull() {
			continue
		}
		resp.Slots = append(resp.Slots, Slot{
			ID:             s.ID,
			EventID:        s.EventID,
			CompanyID:      s.CompanyID,
			OfferID:        s.OfferID,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			Capacity:       s.Capacity,
			AvailableSpots: s.Available(),
		})
	}

	uc.logger.Info("GetAvailableSlots: event=%d returned %d slot(s), phase=%d",
		event.ID, len(resp.Slots), resp.Phase)

	return resp
}

// displayPhase фаза для отображения: расчетная по часам, если событие
// не под ручным управлением. Запись в хранилище здесь не делается.
func (uc *UseCase) displayPhase(event *domain.Event) domain.Phase {
	if event.PhaseOverride {
		return event.CurrentPhase
	}
	return event.EvaluatePhase(uc.timeProvider.Now())
}
