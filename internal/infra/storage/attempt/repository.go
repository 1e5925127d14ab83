package attempt

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	"github.com/avykhr/CareerDay-BookingService/pkg/psqlbuilder"
	"github.com/avykhr/CareerDay-BookingService/pkg/txmanager"
)

// Repository append-only репозиторий журнала попыток бронирования.
// Записи никогда не изменяются и не удаляются штатными операциями.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала попыток
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись о попытке бронирования.
// Вызывается ВНЕ транзакции бронирования: запись должна сохраниться
// и при откате основной транзакции.
func (r *Repository) Append(ctx context.Context, rec *domain.AttemptRecord) error {
	// Журнал не должен попадать в транзакцию бронирования — пишем
	// напрямую в пул, игнорируя транзакцию из контекста
	executor := r.db

	query, args, err := psqlbuilder.Insert("booking_attempts").
		Columns(
			"id",
			"student_id",
			"slot_id",
			"event_id",
			"phase",
			"success",
			"error_code",
			"duration_ms",
		).
		Values(
			rec.ID,
			rec.StudentID,
			rec.SlotID,
			rec.EventID,
			int(rec.Phase),
			rec.Success,
			rec.ErrorCode,
			rec.Duration.Milliseconds(),
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountRecentFailures считает неудачные попытки студента за интервал.
// Используется для диагностики и анти-абьюза.
func (r *Repository) CountRecentFailures(ctx context.Context, studentID int64, intervalMinutes int) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("booking_attempts").
		Where(squirrel.Eq{"student_id": studentID, "success": false}).
		Where(squirrel.Expr("created_at > NOW() - (? * INTERVAL '1 minute')", intervalMinutes)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountRecentFailures - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountRecentFailures - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
