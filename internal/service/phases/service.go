package phases

import (
	"context"
	"errors"
	"fmt"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
)

// Service контроллер фаз события.
// Переходы управляются временем относительно фазовых окон события:
// периодически (cron) и лениво — при каждой проверке лимита внутри
// транзакции бронирования. Оба пути идемпотентны.
type Service struct {
	eventRepo    EventRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр контроллера фаз
// metrics может быть nil, если метрики отключены
func NewService(
	eventRepo EventRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:    eventRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// EnsureCurrent лениво актуализирует фазу уже загруженного (и заблокированного
// FOR UPDATE) события. Вызывается внутри транзакции бронирования, чтобы
// проверка лимита никогда не видела устаревшую фазу в момент перехода.
// Возвращает действующую фазу.
func (s *Service) EnsureCurrent(ctx context.Context, e *domain.Event) (domain.Phase, error) {
	// Ручной override замораживает автоматические переходы
	if e.PhaseOverride {
		return e.CurrentPhase, nil
	}

	evaluated := e.EvaluatePhase(s.timeProvider.Now())
	if evaluated == e.CurrentPhase {
		return evaluated, nil
	}

	if err := s.eventRepo.UpdatePhase(ctx, e.ID, evaluated, e.PhaseVersion); err != nil {
		// Строка события заблокирована вызывающей транзакцией, конфликт
		// версии здесь означает логическую ошибку, а не гонку
		return 0, fmt.Errorf("%w: EnsureCurrent - update phase: %v", ErrInternal, err)
	}

	e.CurrentPhase = evaluated
	e.PhaseVersion++

	s.logger.Info("Phases: event id=%d advanced to phase=%d (lazy)", e.ID, evaluated)
	if s.metrics != nil {
		s.metrics.PhaseTransition("auto")
	}

	return evaluated, nil
}

// AdvanceDue проверяет фазовые окна всех открытых событий и переводит те,
// чье время пришло. Запускается по расписанию. Повторный запуск в том же
// окне ничего не меняет.
func (s *Service) AdvanceDue(ctx context.Context) (int, error) {
	events, err := s.eventRepo.ListOpenForAdvance(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: AdvanceDue - list events: %v", ErrInternal, err)
	}

	advanced := 0
	for _, e := range events {
		// Счетчик инкрементируется только после коммита: retry
		// сериализационного конфликта прогоняет замыкание заново
		bumped := false
		err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			bumped = false

			// Перечитываем с блокировкой: событие могло измениться
			locked, err := s.eventRepo.GetByID(txCtx, e.ID)
			if err != nil {
				return err
			}

			before := locked.CurrentPhase
			after, err := s.EnsureCurrent(txCtx, locked)
			if err != nil {
				return err
			}

			bumped = after != before
			return nil
		})
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				// Событие удалено между списком и транзакцией
				continue
			}
			s.logger.Error("Phases: AdvanceDue failed for event id=%d: %v", e.ID, err)
			continue
		}

		if bumped {
			advanced++
		}
	}

	if advanced > 0 {
		s.logger.Info("Phases: advanced %d event(s)", advanced)
	}

	return advanced, nil
}

// SetPhase принудительно устанавливает фазу события (ручное управление
// администратора). После этого автоматические переходы событие не трогают.
func (s *Service) SetPhase(ctx context.Context, eventID int64, phase domain.Phase) error {
	if phase < domain.PhaseRegistration || phase > domain.PhaseClosed {
		return ErrInvalidPhase
	}

	s.logger.Info("Phases: manual override event id=%d to phase=%d", eventID, phase)

	err := s.eventRepo.SetPhaseOverride(ctx, eventID, phase, true)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%w: SetPhase - repository error: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.PhaseTransition("manual")
	}

	return nil
}

// EnableAuto снимает ручной override и возвращает событие под управление
// расписания, сразу приводя фазу к актуальному значению.
func (s *Service) EnableAuto(ctx context.Context, eventID int64) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		e, err := s.eventRepo.GetByID(txCtx, eventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: EnableAuto - get event: %v", ErrInternal, err)
		}

		evaluated := e.EvaluatePhase(s.timeProvider.Now())
		if err := s.eventRepo.SetPhaseOverride(txCtx, eventID, evaluated, false); err != nil {
			return fmt.Errorf("%w: EnableAuto - clear override: %v", ErrInternal, err)
		}

		s.logger.Info("Phases: auto transitions re-enabled for event id=%d, phase=%d", eventID, evaluated)
		return nil
	})
}

// LimitFor вычисляет результат проверки лимита для студента в данной фазе.
// Чистая функция: не ходит в хранилище, счетчик подтвержденных бронирований
// передает вызывающая сторона (внутри своей транзакции).
func LimitFor(e *domain.Event, st *domain.Student, phase domain.Phase, confirmedCount int) LimitResult {
	res := LimitResult{
		Phase:        phase,
		CurrentCount: confirmedCount,
	}

	switch {
	case !phase.IsOpen():
		res.MaxAllowed = 0
		res.Message = "booking is closed in the current phase"

	case !st.EligibleFor(phase):
		// Открытая фаза, но студент не допущен: депприоритизация
		// закрывает первую фазу независимо от потолка
		res.MaxAllowed = 0
		res.Message = "students with an accepted internship may book once phase 2 opens"

	default:
		res.MaxAllowed = e.CeilingFor(phase)
		if confirmedCount < res.MaxAllowed {
			res.CanBook = true
			res.Message = fmt.Sprintf("%d of %d interviews booked", confirmedCount, res.MaxAllowed)
		} else {
			res.Message = fmt.Sprintf("booking limit of %d reached for the current phase", res.MaxAllowed)
		}
	}

	return res
}

// LimitResult результат проверки лимита бронирований
type LimitResult struct {
	CanBook      bool
	CurrentCount int
	MaxAllowed   int
	Phase        domain.Phase
	Message      string
}
