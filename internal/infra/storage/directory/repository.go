package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/psqlbuilder"
)

const (
	coachesTable = "coaches"
	roomsTable   = "rooms"
)

// Repository читает справочники тренеров и залов.
// Записью справочников занимается админка.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCoach получает тренера по ID
func (r *Repository) GetCoach(ctx context.Context, id int64) (*domain.Coach, error) {
	row, err := r.getByID(ctx, coachesTable, id)
	if err != nil {
		return nil, err
	}

	var coach domain.Coach
	err = row.Scan(&coach.ID, &coach.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCoach - scan row: %w", ErrScanRow, err)
	}
	return &coach, nil
}

// GetRoom получает зал по ID
func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	row, err := r.getByID(ctx, roomsTable, id)
	if err != nil {
		return nil, err
	}

	var room domain.Room
	err = row.Scan(&room.ID, &room.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan row: %w", ErrScanRow, err)
	}
	return &room, nil
}

// GetCoachesByIDs возвращает найденных тренеров по ID, отсутствующие пропускаются
func (r *Repository) GetCoachesByIDs(ctx context.Context, ids []int64) ([]*domain.Coach, error) {
	coaches := make([]*domain.Coach, 0, len(ids))
	if len(ids) == 0 {
		return coaches, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From(coachesTable).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCoachesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCoachesByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var coach domain.Coach
		if err := rows.Scan(&coach.ID, &coach.Name); err != nil {
			return nil, fmt.Errorf("%w: GetCoachesByIDs - scan row: %v", ErrScanRow, err)
		}
		coaches = append(coaches, &coach)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCoachesByIDs - rows error: %v", ErrScanRow, err)
	}

	return coaches, nil
}

// getByID выполняет выборку строки справочника по ID
func (r *Repository) getByID(ctx context.Context, table string, id int64) (*sql.Row, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - build select query for %s: %v", ErrBuildQuery, table, err)
	}

	return executor.QueryRowContext(ctx, query, args...), nil
}
