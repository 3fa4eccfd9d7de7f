package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/psqlbuilder"
)

const (
	tableName = "training_sessions"

	// Уникальный частичный индекс (recurring_booking_id, start_time), см. миграции
	occurrenceConstraint = "uq_sessions_recurring_start"
)

var columns = []string{
	"id",
	"coach_id",
	"room_id",
	"start_time",
	"end_time",
	"session_kind",
	"capacity",
	"status",
	"recurring_booking_id",
	"member_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий тренировочных сессий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает сессию.
// Для сессий из шаблона повторная вставка того же вхождения не выполняется
// (ON CONFLICT DO NOTHING) и возвращается ErrDuplicateOccurrence, транзакция при этом не прерывается.
func (r *Repository) Create(ctx context.Context, s *domain.TrainingSession) (*domain.TrainingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableName).
		Columns(
			"coach_id",
			"room_id",
			"start_time",
			"end_time",
			"session_kind",
			"capacity",
			"status",
			"recurring_booking_id",
			"member_id",
		).
		Values(
			s.CoachID,
			s.RoomID,
			s.StartTime,
			s.EndTime,
			s.SessionKind,
			s.Capacity,
			s.Status,
			s.RecurringBookingID,
			s.MemberID,
		)

	if s.RecurringBookingID != nil {
		insert = insert.Suffix("ON CONFLICT (recurring_booking_id, start_time) WHERE recurring_booking_id IS NOT NULL DO NOTHING RETURNING id, created_at, updated_at")
	} else {
		insert = insert.Suffix("RETURNING id, created_at, updated_at")
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateOccurrence
	}
	if pgerr.IsUniqueViolation(err, occurrenceConstraint) {
		return nil, ErrDuplicateOccurrence
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает сессию по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TrainingSession, error) {
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

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %w", ErrScanRow, err)
	}

	return s, nil
}

// FindOverlapping возвращает неотмененные сессии тренера ИЛИ зала, пересекающиеся с окном.
// Сессия excludeID (0 - без исключения) не учитывается.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindOverlapping(ctx context.Context, coachID, roomID int64, w domain.Window, excludeID int64) ([]*domain.TrainingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.NotEq{"status": domain.SessionCancelled}).
		Where(squirrel.Or{
			squirrel.Eq{"coach_id": coachID},
			squirrel.Eq{"room_id": roomID},
		}).
		Where(squirrel.Lt{"start_time": w.End}).
		Where(squirrel.Gt{"end_time": w.Start}).
		OrderBy("start_time ASC")

	if excludeID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListActiveInRange возвращает неотмененные сессии указанных тренеров или залов, пересекающиеся с окном.
// Используется для расчета занятости при показе слотов.
func (r *Repository) ListActiveInRange(ctx context.Context, coachIDs, roomIDs []int64, w domain.Window) ([]*domain.TrainingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.NotEq{"status": domain.SessionCancelled}).
		Where(squirrel.Or{
			squirrel.Eq{"coach_id": coachIDs},
			squirrel.Eq{"room_id": roomIDs},
		}).
		Where(squirrel.Lt{"start_time": w.End}).
		Where(squirrel.Gt{"end_time": w.Start}).
		OrderBy("start_time ASC", "coach_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListByCoach возвращает сессии тренера, начинающиеся в окне, с опциональным фильтром по статусу
func (r *Repository) ListByCoach(ctx context.Context, coachID int64, w domain.Window, status *domain.SessionStatus) ([]*domain.TrainingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"coach_id": coachID}).
		Where(squirrel.GtOrEq{"start_time": w.Start}).
		Where(squirrel.Lt{"start_time": w.End}).
		OrderBy("start_time ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCoach - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCoach - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ExistsByRecurringAndStart проверяет, сгенерировано ли уже вхождение шаблона (в любом статусе)
func (r *Repository) ExistsByRecurringAndStart(ctx context.Context, recurringBookingID int64, start time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{
			"recurring_booking_id": recurringBookingID,
			"start_time":           start,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByRecurringAndStart - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsByRecurringAndStart - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// CompleteEnded переводит все запланированные сессии, закончившиеся до now, в completed.
// Отмененные и уже завершенные сессии не затрагиваются.
func (r *Repository) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.SessionCompleted).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.SessionScheduled}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CancelFutureByRecurring отменяет запланированные сессии шаблона, начинающиеся строго после after.
// Возвращает ID отмененных сессий.
func (r *Repository) CancelFutureByRecurring(ctx context.Context, recurringBookingID int64, after time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.SessionCancelled).
		Set("updated_at", after).
		Where(squirrel.Eq{
			"recurring_booking_id": recurringBookingID,
			"status":               domain.SessionScheduled,
		}).
		Where(squirrel.Gt{"start_time": after}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelFutureByRecurring - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CancelFutureByRecurring - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CancelFutureByRecurring - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CancelFutureByRecurring - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Cancel отменяет запланированную сессию
func (r *Repository) Cancel(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.SessionCancelled).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.SessionScheduled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "Cancel", query, args)
}

// Move переносит запланированную сессию в новое окно
func (r *Repository) Move(ctx context.Context, id int64, w domain.Window, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_time", w.Start).
		Set("end_time", w.End).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.SessionScheduled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Move - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "Move", query, args)
}

// execSingle выполняет UPDATE одной запланированной сессии
func (r *Repository) execSingle(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrInvalidTransition
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.TrainingSession, error) {
	var s domain.TrainingSession
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.CoachID,
		&s.RoomID,
		&s.StartTime,
		&s.EndTime,
		&s.SessionKind,
		&s.Capacity,
		&s.Status,
		&s.RecurringBookingID,
		&s.MemberID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func scanSessions(rows *sql.Rows) ([]*domain.TrainingSession, error) {
	sessions := make([]*domain.TrainingSession, 0)

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
