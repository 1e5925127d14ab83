package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	"github.com/avykhr/CareerDay-BookingService/pkg/psqlbuilder"
	"github.com/avykhr/CareerDay-BookingService/pkg/txmanager"
)

// Repository репозиторий для работы с событиями, их временными
// диапазонами и участниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var eventColumns = []string{
	"id",
	"name",
	"event_date",
	"slot_duration_minutes",
	"buffer_minutes",
	"slots_per_time",
	"phase1_start",
	"phase1_end",
	"phase2_start",
	"phase2_end",
	"phase1_ceiling",
	"phase2_ceiling",
	"current_phase",
	"phase_override",
	"phase_version",
	"created_at",
	"updated_at",
}

// Create создает новое событие
func (r *Repository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"name",
			"event_date",
			"slot_duration_minutes",
			"buffer_minutes",
			"slots_per_time",
			"phase1_start",
			"phase1_end",
			"phase2_start",
			"phase2_end",
			"phase1_ceiling",
			"phase2_ceiling",
		).
		Values(
			e.Name,
			e.EventDate,
			e.SlotDurationMinutes,
			e.BufferMinutes,
			e.SlotsPerTime,
			e.Phase1Start,
			e.Phase1End,
			e.Phase2Start,
			e.Phase2End,
			e.Phase1Ceiling,
			e.Phase2Ceiling,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByID получает событие по ID.
// Внутри транзакции блокирует строку события (FOR UPDATE) — фазовое
// состояние и потолки читаются в той же транзакции, что и проверки лимитов.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEvent(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// ListOpenForAdvance получает события, для которых включены автоматические
// переходы фаз (без ручного override) и которые еще не закрыты
func (r *Repository) ListOpenForAdvance(ctx context.Context) ([]*domain.Event, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"phase_override": false}).
		Where(squirrel.NotEq{"current_phase": int(domain.PhaseClosed)}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenForAdvance - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenForAdvance - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := r.scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenForAdvance - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// UpdatePhase переводит событие в новую фазу с оптимистической проверкой
// версии. Если версия изменилась с момента чтения, возвращает
// ErrPhaseVersionConflict — вызывающая сторона перечитывает состояние.
func (r *Repository) UpdatePhase(ctx context.Context, id int64, phase domain.Phase, expectedVersion int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("current_phase", int(phase)).
		Set("phase_version", expectedVersion+1).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "phase_version": expectedVersion}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePhase - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePhase - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePhase - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPhaseVersionConflict
	}

	return nil
}

// SetPhaseOverride принудительно устанавливает фазу (ручное управление).
// После override автоматические переходы событие не трогают, пока
// override не снят.
func (r *Repository) SetPhaseOverride(ctx context.Context, id int64, phase domain.Phase, override bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("current_phase", int(phase)).
		Set("phase_override", override).
		Set("phase_version", squirrel.Expr("phase_version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPhaseOverride - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPhaseOverride - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPhaseOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete удаляет событие (вызывается последним шагом teardown,
// когда слоты и бронирования уже удалены)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Временные диапазоны

// CreateTimeRange добавляет временной диапазон к событию
func (r *Repository) CreateTimeRange(ctx context.Context, tr *domain.TimeRange) (*domain.TimeRange, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_time_ranges").
		Columns("event_id", "range_start", "range_end").
		Values(tr.EventID, tr.Start, tr.End).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeRange - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tr.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeRange - execute insert: %v", ErrExecQuery, err)
	}

	tr.CreatedAt = createdAt.Time
	return tr, nil
}

// GetTimeRanges получает временные диапазоны события
func (r *Repository) GetTimeRanges(ctx context.Context, eventID int64) ([]*domain.TimeRange, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_id", "range_start", "range_end", "created_at").
		From("event_time_ranges").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("range_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]*domain.TimeRange, 0)
	for rows.Next() {
		var tr domain.TimeRange
		var createdAt sql.NullTime
		if err := rows.Scan(&tr.ID, &tr.EventID, &tr.Start, &tr.End, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetTimeRanges - scan row: %v", ErrScanRow, err)
		}
		tr.CreatedAt = createdAt.Time
		ranges = append(ranges, &tr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// DeleteTimeRanges удаляет все временные диапазоны события (teardown)
func (r *Repository) DeleteTimeRanges(ctx context.Context, eventID int64) (int64, error) {
	return r.deleteByEvent(ctx, "event_time_ranges", eventID, "DeleteTimeRanges")
}

// Участники

// AddParticipant приглашает компанию к участию в событии
func (r *Repository) AddParticipant(ctx context.Context, eventID, companyID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_companies").
		Columns("event_id", "company_id", "active").
		Values(eventID, companyID, true).
		Suffix("ON CONFLICT (event_id, company_id) DO UPDATE SET active = TRUE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddParticipant - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddParticipant - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetActiveCompanies получает ID активных компаний-участников события
func (r *Repository) GetActiveCompanies(ctx context.Context, eventID int64) ([]int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("company_id").
		From("event_companies").
		Where(squirrel.Eq{"event_id": eventID, "active": true}).
		OrderBy("company_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCompanies - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCompanies - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	companyIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetActiveCompanies - scan company_id: %v", ErrScanRow, err)
		}
		companyIDs = append(companyIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveCompanies - rows error: %v", ErrScanRow, err)
	}

	return companyIDs, nil
}

// IsActiveParticipant проверяет, что компания — активный участник события
func (r *Repository) IsActiveParticipant(ctx context.Context, eventID, companyID int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("event_companies").
		Where(squirrel.Eq{"event_id": eventID, "company_id": companyID, "active": true}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsActiveParticipant - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsActiveParticipant - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// DeleteParticipants удаляет всех участников события (teardown)
func (r *Repository) DeleteParticipants(ctx context.Context, eventID int64) (int64, error) {
	return r.deleteByEvent(ctx, "event_companies", eventID, "DeleteParticipants")
}

// Вспомогательные методы

func (r *Repository) deleteByEvent(ctx context.Context, table string, eventID int64, op string) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func (r *Repository) scanEvent(row *sql.Row, op string) (*domain.Event, error) {
	var e domain.Event
	var phase int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.EventDate,
		&e.SlotDurationMinutes,
		&e.BufferMinutes,
		&e.SlotsPerTime,
		&e.Phase1Start,
		&e.Phase1End,
		&e.Phase2Start,
		&e.Phase2End,
		&e.Phase1Ceiling,
		&e.Phase2Ceiling,
		&phase,
		&e.PhaseOverride,
		&e.PhaseVersion,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan event: %v", ErrScanRow, op, err)
	}

	e.CurrentPhase = domain.Phase(phase)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

func (r *Repository) scanEventRow(rows *sql.Rows) (*domain.Event, error) {
	var e domain.Event
	var phase int
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&e.ID,
		&e.Name,
		&e.EventDate,
		&e.SlotDurationMinutes,
		&e.BufferMinutes,
		&e.SlotsPerTime,
		&e.Phase1Start,
		&e.Phase1End,
		&e.Phase2Start,
		&e.Phase2End,
		&e.Phase1Ceiling,
		&e.Phase2Ceiling,
		&phase,
		&e.PhaseOverride,
		&e.PhaseVersion,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanEventRow - scan row: %v", ErrScanRow, err)
	}

	e.CurrentPhase = domain.Phase(phase)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
