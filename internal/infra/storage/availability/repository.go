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

const (
	rulesTable     = "weekly_availability_rules"
	blocksTable    = "blocked_slots"
	additionsTable = "availability_additions"
)

var ruleColumns = []string{
	"id",
	"coach_id",
	"room_id",
	"day_of_week",
	"start_time",
	"end_time",
	"session_kind",
	"capacity",
	"slot_duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил доступности и исключений из них
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRule создает недельное правило доступности тренера
func (r *Repository) CreateRule(ctx context.Context, rule *domain.WeeklyAvailabilityRule) (*domain.WeeklyAvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(rulesTable).
		Columns(
			"coach_id",
			"room_id",
			"day_of_week",
			"start_time",
			"end_time",
			"session_kind",
			"capacity",
			"slot_duration_minutes",
		).
		Values(
			rule.CoachID,
			rule.RoomID,
			int(rule.DayOfWeek),
			rule.StartTime,
			rule.EndTime,
			rule.SessionKind,
			rule.Capacity,
			rule.SlotDurationMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %w", ErrExecQuery, err)
	}

	return rule, nil
}

// ListRulesByCoaches возвращает все недельные правила указанных тренеров
func (r *Repository) ListRulesByCoaches(ctx context.Context, coachIDs []int64) ([]*domain.WeeklyAvailabilityRule, error) {
	rules := make([]*domain.WeeklyAvailabilityRule, 0)
	if len(coachIDs) == 0 {
		return rules, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From(rulesTable).
		Where(squirrel.Eq{"coach_id": coachIDs}).
		OrderBy("coach_id ASC", "day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRulesByCoaches - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRulesByCoaches - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule domain.WeeklyAvailabilityRule
		var dayOfWeek int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.CoachID,
			&rule.RoomID,
			&dayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.SessionKind,
			&rule.Capacity,
			&rule.SlotDurationMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRulesByCoaches - scan row: %v", ErrScanRow, err)
		}

		rule.DayOfWeek = time.Weekday(dayOfWeek)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRulesByCoaches - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// DeleteRule удаляет правило тренера
func (r *Repository) DeleteRule(ctx context.Context, coachID, ruleID int64) error {
	return r.deleteOwned(ctx, "DeleteRule", rulesTable, coachID, ruleID, ErrRuleNotFound)
}

// deleteOwned удаляет строку по ID только если она принадлежит тренеру
func (r *Repository) deleteOwned(ctx context.Context, op, table string, coachID, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "coach_id": coachID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
