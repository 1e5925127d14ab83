package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
	slotRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/slot"
	studentRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/student"
	"github.com/avykhr/CareerDay-BookingService/internal/service/phases"
)

// UseCase use case атомарного бронирования слота.
//
// Вся последовательность проверка-затем-запись выполняется в одной
// сериализуемой транзакции: актуализация фазы, лимит студента,
// вместимость слота, конфликт интервалов, вставка. Две конкурентные
// заявки на последнее место дают ровно один успех и один отказ SLOT_FULL.
type UseCase struct {
	eventRepo    EventRepository
	slotRepo     SlotRepository
	studentRepo  StudentRepository
	bookingRepo  BookingRepository
	attemptRepo  AttemptRepository
	phaseCtl     PhaseController
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если метрики отключены
func NewUseCase(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	bookingRepo BookingRepository,
	attemptRepo AttemptRepository,
	phaseCtl PhaseController,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:    eventRepo,
		slotRepo:     slotRepo,
		studentRepo:  studentRepo,
		bookingRepo:  bookingRepo,
		attemptRepo:  attemptRepo,
		phaseCtl:     phaseCtl,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет бронирование.
// Бизнес-отказы возвращаются как Response{Success: false}, ошибкой
// являются только предусловия (неизвестные ID) и инфраструктурные сбои.
// Каждая попытка — успешная или нет — попадает в журнал booking_attempts.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, slot=%d", req.StudentID, req.SlotID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	started := uc.timeProvider.Now()

	var (
		result       *domain.Booking
		rej          *rejection
		bookedSlot   *domain.Slot
		observedPhase domain.Phase
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Слот (FOR UPDATE): сериализует конкурентные брони этого слота
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		bookedSlot = slot

		// 2. Событие (FOR UPDATE): фазовое состояние читается в этой же
		// транзакции — кешированному результату checkBookingLimit не доверяем
		event, err := uc.eventRepo.GetByID(txCtx, slot.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}

		// 3. Студент (FOR UPDATE): сериализует операции одного студента
		student, err := uc.studentRepo.GetByID(txCtx, req.StudentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}

		// 4. Ленивая актуализация фазы
		phase, err := uc.phaseCtl.EnsureCurrent(txCtx, event)
		if err != nil {
			return fmt.Errorf("%w: failed to ensure phase: %v", ErrInternal, err)
		}
		observedPhase = phase

		if !slot.Active {
			rej = reject(domain.CodeSlotInactive, "this slot has been deactivated")
			return nil
		}

		// 5. Лимит фазы по живому счету подтвержденных бронирований
		intervals, err := uc.bookingRepo.GetConfirmedIntervals(txCtx, req.StudentID, event.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get confirmed bookings: %v", ErrInternal, err)
		}

		if r := checkLimit(event, student, phase, len(intervals)); r != nil {
			rej = r
			return nil
		}

		// 6. Вместимость слота
		confirmed, err := uc.bookingRepo.CountConfirmedBySlot(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to count slot bookings: %v", ErrInternal, err)
		}
		if confirmed >= slot.Capacity {
			rej = reject(domain.CodeSlotFull, "all seats in this slot are taken")
			return nil
		}

		// 7. Конфликт интервалов [start, end)
		if r := checkConflict(slot, intervals); r != nil {
			rej = r
			return nil
		}

		// 8. Вставка подтвержденного бронирования с фазой на момент создания
		booking := &domain.Booking{
			SlotID:    slot.ID,
			StudentID: req.StudentID,
			EventID:   event.ID,
			Status:    domain.StatusConfirmed,
			Phase:     phase,
			Notes:     req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	// Журнал попыток пишется независимо от исхода транзакции
	var eventID int64
	if bookedSlot != nil {
		eventID = bookedSlot.EventID
	}
	uc.appendAttempt(ctx, req, eventID, observedPhase, started, rej, err)

	if err != nil {
		return nil, err
	}

	if rej != nil {
		uc.logger.Warn("CreateBooking: rejected student=%d slot=%d code=%s",
			req.StudentID, req.SlotID, rej.code)
		return &Response{
			Success:   false,
			ErrorCode: rej.code,
			Message:   rej.message,
			Phase:     observedPhase,
		}, nil
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d student=%d slot=%d phase=%d",
		result.ID, req.StudentID, req.SlotID, observedPhase)

	return &Response{
		Success:   true,
		BookingID: &result.ID,
		Message:   "booking confirmed",
		EventID:   result.EventID,
		CompanyID: bookedSlot.CompanyID,
		Phase:     result.Phase,
		StartTime: bookedSlot.StartTime,
		EndTime:   bookedSlot.EndTime,
		CreatedAt: result.CreatedAt,
	}, nil
}

// checkLimit повторяет проверку checkBookingLimit на зафиксированном
// транзакцией состоянии; возвращает бизнес-отказ или nil
func checkLimit(event *domain.Event, student *domain.Student, phase domain.Phase, confirmedCount int) *rejection {
	res := phases.LimitFor(event, student, phase, confirmedCount)
	if res.CanBook {
		return nil
	}

	switch {
	case !phase.IsOpen():
		return reject(domain.CodePhaseClosed, res.Message)
	case !student.EligibleFor(phase):
		return reject(domain.CodeDeprioritized, res.Message)
	default:
		return reject(domain.CodeLimitExceeded, res.Message)
	}
}

// checkConflict ищет пересечение слота с подтвержденными бронированиями
// студента (полуоткрытые интервалы; границы впритык конфликтом не считаются)
func checkConflict(slot *domain.Slot, intervals []*domain.BookedInterval) *rejection {
	for _, iv := range intervals {
		if slot.Overlaps(iv.Start, iv.End) {
			return reject(domain.CodeTimeConflict,
				fmt.Sprintf("overlaps an existing interview at %s", iv.Start.Format("15:04")))
		}
	}
	return nil
}

// appendAttempt пишет запись журнала попыток. Пишется вне транзакции
// бронирования: запись переживает откат. Сбой журнала логируется, но
// результат бронирования не меняет.
func (uc *UseCase) appendAttempt(
	ctx context.Context,
	req *Request,
	eventID int64,
	phase domain.Phase,
	started time.Time,
	rej *rejection,
	txErr error,
) {
	rec := &domain.AttemptRecord{
		ID:        uuid.NewString(),
		StudentID: req.StudentID,
		SlotID:    req.SlotID,
		EventID:   eventID,
		Phase:     phase,
		Success:   txErr == nil && rej == nil,
		Duration:  uc.timeProvider.Now().Sub(started),
	}

	switch {
	case txErr != nil:
		// Ошибки предусловий (неизвестные ID) отделяются от
		// инфраструктурных сбоев
		code := domain.CodeInternalError
		if errors.Is(txErr, ErrSlotNotFound) ||
			errors.Is(txErr, ErrEventNotFound) ||
			errors.Is(txErr, ErrStudentNotFound) {
			code = domain.CodeNotFound
		}
		rec.ErrorCode = &code
	case rej != nil:
		code := rej.code
		rec.ErrorCode = &code
	}

	if err := uc.attemptRepo.Append(ctx, rec); err != nil {
		uc.logger.Error("CreateBooking: failed to append attempt record: %v", err)
	}

	if uc.metrics != nil {
		outcome := "success"
		if rec.ErrorCode != nil {
			outcome = *rec.ErrorCode
		}
		uc.metrics.BookingAttempt(outcome)
	}
}
