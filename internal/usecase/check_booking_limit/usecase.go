package check_booking_limit

import (
	"context"
	"errors"
	"fmt"

	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
	studentRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/student"
	"github.com/avykhr/CareerDay-BookingService/internal/service/phases"
)

// UseCase use case проверки лимита бронирований студента.
// Выполняет ту же проверку, что и бронирование, но без записи.
type UseCase struct {
	eventRepo   EventRepository
	studentRepo StudentRepository
	bookingRepo BookingRepository
	phaseCtl    PhaseController
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	studentRepo StudentRepository,
	bookingRepo BookingRepository,
	phaseCtl PhaseController,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:   eventRepo,
		studentRepo: studentRepo,
		bookingRepo: bookingRepo,
		phaseCtl:    phaseCtl,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute возвращает действующую фазу, счетчик подтвержденных бронирований
// и доступный потолок для пары студент-событие.
// Транзакция сериализуемая: EnsureCurrent может лениво продвинуть фазу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckBookingLimit: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		event, err := uc.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}

		student, err := uc.studentRepo.GetByID(txCtx, req.StudentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}

		phase, err := uc.phaseCtl.EnsureCurrent(txCtx, event)
		if err != nil {
			return fmt.Errorf("%w: failed to ensure phase: %v", ErrInternal, err)
		}

		intervals, err := uc.bookingRepo.GetConfirmedIntervals(txCtx, req.StudentID, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to get confirmed bookings: %v", ErrInternal, err)
		}

		res := phases.LimitFor(event, student, phase, len(intervals))
		resp = &Response{
			CanBook:      res.CanBook,
			CurrentCount: res.CurrentCount,
			MaxAllowed:   res.MaxAllowed,
			Phase:        res.Phase,
			Message:      res.Message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckBookingLimit: student=%d event=%d phase=%d can_book=%t (%d/%d)",
		req.StudentID, req.EventID, resp.Phase, resp.CanBook, resp.CurrentCount, resp.MaxAllowed)

	return resp, nil
}
