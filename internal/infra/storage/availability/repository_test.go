package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

var (
	dayStart = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	dayEnd   = dayStart.Add(24 * time.Hour)
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_CreateRule(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO weekly_availability_rules \(coach_id,room_id,day_of_week,start_time,end_time,session_kind,capacity,slot_duration_minutes\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8\) RETURNING id, created_at, updated_at`).
		WithArgs(int64(1), int64(10), 3, "09:00", "12:00", "INDIVIDUAL", 0, 30).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(5, dayStart, dayStart))

	rule, err := repo.CreateRule(context.Background(), &domain.WeeklyAvailabilityRule{
		CoachID:             1,
		RoomID:              10,
		DayOfWeek:           time.Wednesday,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SessionKind:         domain.KindIndividual,
		SlotDurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), rule.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListRulesByCoaches(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM weekly_availability_rules WHERE coach_id IN \(\$1,\$2\) ORDER BY coach_id ASC, day_of_week ASC, start_time ASC`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(ruleColumns).
			AddRow(5, 1, 10, 1, "10:00:00", "11:00:00", "GROUP", 10, 60, dayStart, dayStart))

	rules, err := repo.ListRulesByCoaches(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, time.Monday, rules[0].DayOfWeek)
	assert.Equal(t, "10:00", rules[0].StartTime.String())
	assert.Equal(t, domain.KindGroup, rules[0].SessionKind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListRulesByCoaches_NoCoaches(t *testing.T) {
	repo, mock := newRepo(t)

	rules, err := repo.ListRulesByCoaches(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rules)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListBlocksInRange(t *testing.T) {
	repo, mock := newRepo(t)
	blockStart := dayStart.Add(9*time.Hour + 15*time.Minute)

	mock.ExpectQuery(`SELECT id, coach_id, start_time, end_time, reason, created_at FROM blocked_slots WHERE coach_id IN \(\$1\) AND start_time < \$2 AND end_time > \$3 ORDER BY start_time ASC`).
		WithArgs(int64(1), dayEnd, dayStart).
		WillReturnRows(sqlmock.NewRows(blockColumns).
			AddRow(7, 1, blockStart, blockStart.Add(30*time.Minute), "dentist", dayStart))

	blocks, err := repo.ListBlocksInRange(context.Background(), []int64{1}, domain.Window{Start: dayStart, End: dayEnd})
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockStart, blocks[0].StartTime)
	require.NotNil(t, blocks[0].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBlock(t *testing.T) {
	repo, mock := newRepo(t)
	start := dayStart.Add(9 * time.Hour)

	mock.ExpectQuery(`INSERT INTO blocked_slots \(coach_id,start_time,end_time,reason\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id, created_at`).
		WithArgs(int64(1), start, start.Add(time.Hour), "sick").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, dayStart))

	block, err := repo.CreateBlock(context.Background(), &domain.BlockedSlot{
		CoachID:   1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Reason:    ptr.Ptr("sick"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), block.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteBlock_NotOwned(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM blocked_slots WHERE coach_id = \$1 AND id = \$2`).
		WithArgs(int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteBlock(context.Background(), 2, 3)
	require.ErrorIs(t, err, ErrBlockNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAdditionsInRange(t *testing.T) {
	repo, mock := newRepo(t)
	start := dayStart.Add(18 * time.Hour)

	mock.ExpectQuery(`SELECT .* FROM availability_additions WHERE coach_id IN \(\$1\) AND start_time < \$2 AND end_time > \$3`).
		WithArgs(int64(1), dayEnd, dayStart).
		WillReturnRows(sqlmock.NewRows(additionColumns).
			AddRow(4, 1, 10, start, start.Add(2*time.Hour), "INDIVIDUAL", 0, 60, dayStart))

	additions, err := repo.ListAdditionsInRange(context.Background(), []int64{1}, domain.Window{Start: dayStart, End: dayEnd})
	require.NoError(t, err)
	require.Len(t, additions, 1)
	assert.Equal(t, int64(10), additions[0].RoomID)
	assert.Equal(t, 60, additions[0].SlotDurationMinutes)
}

func TestRepository_PurgeExpired(t *testing.T) {
	repo, mock := newRepo(t)
	now := dayEnd

	mock.ExpectExec(`DELETE FROM blocked_slots WHERE end_time < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM availability_additions WHERE end_time < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := repo.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
