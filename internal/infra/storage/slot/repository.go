package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	"github.com/avykhr/CareerDay-BookingService/pkg/psqlbuilder"
	"github.com/avykhr/CareerDay-BookingService/pkg/txmanager"
)

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"event_id",
	"company_id",
	"offer_id",
	"start_time",
	"end_time",
	"capacity",
	"active",
	"created_at",
}

// CreateBatch вставляет пачку сгенерированных слотов.
// ON CONFLICT DO NOTHING: повторная генерация не создает дубликатов
// на тех же (event, company, start_time).
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("event_id", "company_id", "offer_id", "start_time", "end_time", "capacity", "active")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.EventID,
			s.CompanyID,
			s.OfferID,
			s.StartTime,
			s.EndTime,
			s.Capacity,
			s.Active,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (event_id, company_id, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetByID получает слот по ID.
// Внутри транзакции блокирует строку слота (FOR UPDATE) — это
// сериализует конкурентные бронирования одного слота.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.EventID,
		&s.CompanyID,
		&s.OfferID,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.Active,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	return &s, nil
}

// ListWithAvailability получает активные слоты компании на событии вместе
// с живым счетчиком подтвержденных бронирований. Счетчик всегда вычисляется
// из строк bookings, а не из кешированного значения.
func (r *Repository) ListWithAvailability(ctx context.Context, eventID, companyID int64) ([]*domain.AvailableSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.event_id",
		"s.company_id",
		"s.offer_id",
		"s.start_time",
		"s.end_time",
		"s.capacity",
		"s.active",
		"s.created_at",
		"COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS confirmed_count",
	).
		From("slots s").
		LeftJoin("bookings b ON b.slot_id = s.id").
		Where(squirrel.Eq{"s.event_id": eventID, "s.company_id": companyID, "s.active": true}).
		GroupBy("s.id").
		OrderBy("s.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.AvailableSlot, 0)
	for rows.Next() {
		var s domain.AvailableSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.EventID,
			&s.CompanyID,
			&s.OfferID,
			&s.StartTime,
			&s.EndTime,
			&s.Capacity,
			&s.Active,
			&createdAt,
			&s.ConfirmedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithAvailability - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithAvailability - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ListByOffer получает активные слоты, привязанные к вакансии, с живой
// доступностью
func (r *Repository) ListByOffer(ctx context.Context, offerID int64) ([]*domain.AvailableSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.event_id",
		"s.company_id",
		"s.offer_id",
		"s.start_time",
		"s.end_time",
		"s.capacity",
		"s.active",
		"s.created_at",
		"COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS confirmed_count",
	).
		From("slots s").
		LeftJoin("bookings b ON b.slot_id = s.id").
		Where(squirrel.Eq{"s.offer_id": offerID, "s.active": true}).
		GroupBy("s.id").
		OrderBy("s.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOffer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOffer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.AvailableSlot, 0)
	for rows.Next() {
		var s domain.AvailableSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.EventID,
			&s.CompanyID,
			&s.OfferID,
			&s.StartTime,
			&s.EndTime,
			&s.Capacity,
			&s.Active,
			&createdAt,
			&s.ConfirmedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOffer - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOffer - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ListBookedStarts получает слоты пары (event, company), на которых есть
// бронирования любого статуса. Ровно эти слоты переживают DeleteUnbooked,
// поэтому генератор считает по ним SlotsPreserved.
func (r *Repository) ListBookedStarts(ctx context.Context, eventID, companyID int64) (map[int64]bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT s.id").
		From("slots s").
		Join("bookings b ON b.slot_id = s.id").
		Where(squirrel.Eq{
			"s.event_id":   eventID,
			"s.company_id": companyID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedStarts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedStarts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	booked := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListBookedStarts - scan slot id: %v", ErrScanRow, err)
		}
		booked[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedStarts - rows error: %v", ErrScanRow, err)
	}

	return booked, nil
}

// DeleteUnbooked удаляет слоты пары (event, company), на которые нет ни
// одного бронирования (любого статуса). Слоты с историей бронирований
// остаются — их удаление оборвало бы внешние ключи и аудит.
func (r *Repository) DeleteUnbooked(ctx context.Context, eventID, companyID int64) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"event_id": eventID, "company_id": companyID}).
		Where("NOT EXISTS (SELECT 1 FROM bookings b WHERE b.slot_id = slots.id)").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbooked - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbooked - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbooked - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Deactivate деактивирует слот. Слот с подтвержденными бронированиями
// деактивировать нельзя — сначала вызывающая сторона отменяет бронирования.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("active", false).
		Where(squirrel.Eq{"id": id}).
		Where("NOT EXISTS (SELECT 1 FROM bookings b WHERE b.slot_id = slots.id AND b.status = 'confirmed')").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо слот не существует, либо на нем есть подтвержденные бронирования
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotHasBookings
	}

	return nil
}

// DeleteByEvent удаляет все слоты события (teardown, после удаления бронирований)
func (r *Repository) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEvent - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEvent - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEvent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
