package delete_event

import (
	"context"
	"errors"
	"fmt"

	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
)

// UseCase use case полного удаления события.
//
// Сносит событие вместе со слотами, бронированиями, временными окнами
// и участниками в одной транзакции: либо исчезает все, либо ничего.
// Журнал попыток бронирования намеренно не трогается — это аудит.
type UseCase struct {
	eventRepo   EventRepository
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:   eventRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute удаляет событие и все связанные данные.
// Порядок удаления обратен зависимостям: бронирования, слоты, окна,
// участники, само событие.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeleteEvent: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("DeleteEvent: event=%d", req.EventID)

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.DeleteByEvent(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete bookings: %v", ErrInternal, err)
		}

		slots, err := uc.slotRepo.DeleteByEvent(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
		}

		ranges, err := uc.eventRepo.DeleteTimeRanges(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete time ranges: %v", ErrInternal, err)
		}

		participants, err := uc.eventRepo.DeleteParticipants(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete participants: %v", ErrInternal, err)
		}

		if err := uc.eventRepo.Delete(txCtx, req.EventID); err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: failed to delete event: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingsDeleted:     bookings,
			SlotsDeleted:        slots,
			TimeRangesDeleted:   ranges,
			ParticipantsDeleted: participants,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeleteEvent: event=%d removed (bookings=%d, slots=%d, ranges=%d, participants=%d)",
		req.EventID, resp.BookingsDeleted, resp.SlotsDeleted, resp.TimeRangesDeleted, resp.ParticipantsDeleted)

	return resp, nil
}
