package recurring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/psqlbuilder"
)

const tableName = "recurring_bookings"

var columns = []string{
	"id",
	"coach_id",
	"member_id",
	"room_id",
	"day_of_week",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов регулярных записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает активный шаблон
func (r *Repository) Create(ctx context.Context, rb *domain.RecurringBooking) (*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"coach_id",
			"member_id",
			"room_id",
			"day_of_week",
			"start_time",
			"end_time",
			"active",
		).
		Values(
			rb.CoachID,
			rb.MemberID,
			rb.RoomID,
			int(rb.DayOfWeek),
			rb.StartTime,
			rb.EndTime,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rb.ID, &rb.CreatedAt, &rb.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	rb.Active = true

	return rb, nil
}

// GetByID получает шаблон по ID. Внутри транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rb, err := scanRecurring(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecurringBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return rb, nil
}

// ListActive возвращает все активные шаблоны в порядке создания
func (r *Repository) ListActive(ctx context.Context) ([]*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.RecurringBooking, 0)
	for rows.Next() {
		rb, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		result = append(result, rb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Deactivate выключает шаблон. Повторная деактивация не ошибка.
func (r *Repository) Deactivate(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("active", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecurringBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecurring(row rowScanner) (*domain.RecurringBooking, error) {
	var rb domain.RecurringBooking
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rb.ID,
		&rb.CoachID,
		&rb.MemberID,
		&rb.RoomID,
		&dayOfWeek,
		&rb.StartTime,
		&rb.EndTime,
		&rb.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rb.DayOfWeek = time.Weekday(dayOfWeek)
	rb.CreatedAt = createdAt.Time
	rb.UpdatedAt = updatedAt.Time

	return &rb, nil
}
