package student

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	"github.com/avykhr/CareerDay-BookingService/pkg/psqlbuilder"
	"github.com/avykhr/CareerDay-BookingService/pkg/txmanager"
)

// Repository репозиторий для работы со студентами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает студента по ID.
// Внутри транзакции блокирует строку студента (FOR UPDATE) — это дает
// взаимное исключение всех операций бронирования одного студента.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "deprioritized", "created_at").
		From("students").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Student
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Deprioritized, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan student: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	return &s, nil
}

// SetDeprioritized устанавливает флаг deprioritized
// (вызывается админским инструментом при импорте данных о стажировках)
func (r *Repository) SetDeprioritized(ctx context.Context, id int64, deprioritized bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("deprioritized", deprioritized).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDeprioritized - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetDeprioritized - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetDeprioritized - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStudentNotFound
	}

	return nil
}
