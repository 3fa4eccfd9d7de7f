package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/psqlbuilder"
)

var blockColumns = []string{
	"id",
	"coach_id",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

var additionColumns = []string{
	"id",
	"coach_id",
	"room_id",
	"start_time",
	"end_time",
	"session_kind",
	"capacity",
	"slot_duration_minutes",
	"created_at",
}

// CreateBlock создает блокировку времени тренера
func (r *Repository) CreateBlock(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blocksTable).
		Columns("coach_id", "start_time", "end_time", "reason").
		Values(block.CoachID, block.StartTime, block.EndTime, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &block.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %w", ErrExecQuery, err)
	}

	return block, nil
}

// DeleteBlock удаляет блокировку тренера
func (r *Repository) DeleteBlock(ctx context.Context, coachID, blockID int64) error {
	return r.deleteOwned(ctx, "DeleteBlock", blocksTable, coachID, blockID, ErrBlockNotFound)
}

// ListBlocksInRange возвращает блокировки тренеров, пересекающиеся с окном
func (r *Repository) ListBlocksInRange(ctx context.Context, coachIDs []int64, w domain.Window) ([]*domain.BlockedSlot, error) {
	blocks := make([]*domain.BlockedSlot, 0)
	if len(coachIDs) == 0 {
		return blocks, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(blocksTable).
		Where(squirrel.Eq{"coach_id": coachIDs}).
		Where(squirrel.Lt{"start_time": w.End}).
		Where(squirrel.Gt{"end_time": w.Start}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocksInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocksInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b domain.BlockedSlot
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.CoachID, &b.StartTime, &b.EndTime, &b.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlocksInRange - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocksInRange - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateAddition создает дополнительное окно доступности
func (r *Repository) CreateAddition(ctx context.Context, a *domain.AvailabilityAddition) (*domain.AvailabilityAddition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(additionsTable).
		Columns(
			"coach_id",
			"room_id",
			"start_time",
			"end_time",
			"session_kind",
			"capacity",
			"slot_duration_minutes",
		).
		Values(
			a.CoachID,
			a.RoomID,
			a.StartTime,
			a.EndTime,
			a.SessionKind,
			a.Capacity,
			a.SlotDurationMinutes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAddition - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateAddition - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// DeleteAddition удаляет дополнительное окно тренера
func (r *Repository) DeleteAddition(ctx context.Context, coachID, additionID int64) error {
	return r.deleteOwned(ctx, "DeleteAddition", additionsTable, coachID, additionID, ErrAdditionNotFound)
}

// ListAdditionsInRange возвращает дополнительные окна тренеров, пересекающиеся с окном
func (r *Repository) ListAdditionsInRange(ctx context.Context, coachIDs []int64, w domain.Window) ([]*domain.AvailabilityAddition, error) {
	additions := make([]*domain.AvailabilityAddition, 0)
	if len(coachIDs) == 0 {
		return additions, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(additionColumns...).
		From(additionsTable).
		Where(squirrel.Eq{"coach_id": coachIDs}).
		Where(squirrel.Lt{"start_time": w.End}).
		Where(squirrel.Gt{"end_time": w.Start}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAdditionsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAdditionsInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.AvailabilityAddition
		var createdAt sql.NullTime
		err := rows.Scan(
			&a.ID,
			&a.CoachID,
			&a.RoomID,
			&a.StartTime,
			&a.EndTime,
			&a.SessionKind,
			&a.Capacity,
			&a.SlotDurationMinutes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAdditionsInRange - scan row: %v", ErrScanRow, err)
		}
		a.CreatedAt = createdAt.Time
		additions = append(additions, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAdditionsInRange - rows error: %v", ErrScanRow, err)
	}

	return additions, nil
}

// PurgeExpired удаляет блокировки и дополнительные окна, закончившиеся до now.
// Возвращает общее количество удаленных строк.
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var total int64
	for _, table := range []string{blocksTable, additionsTable} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Lt{"end_time": now}).
			ToSql()
		if err != nil {
			return total, fmt.Errorf("%w: PurgeExpired - build delete query for %s: %v", ErrBuildQuery, table, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("%w: PurgeExpired - delete from %s: %w", ErrExecQuery, table, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("%w: PurgeExpired - get rows affected: %v", ErrExecQuery, err)
		}
		total += rowsAffected
	}

	return total, nil
}
