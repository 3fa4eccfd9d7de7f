package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

var (
	start = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	end   = start.Add(time.Hour)
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func sessionRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO training_sessions \(coach_id,room_id,start_time,end_time,session_kind,capacity,status,recurring_booking_id,member_id\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\) RETURNING id, created_at, updated_at`).
		WithArgs(int64(1), int64(10), start, end, "INDIVIDUAL", 1, "scheduled", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, start, start))

	created, err := repo.Create(context.Background(), &domain.TrainingSession{
		CoachID:     1,
		RoomID:      10,
		StartTime:   start,
		EndTime:     end,
		SessionKind: domain.KindIndividual,
		Capacity:    1,
		Status:      domain.SessionScheduled,
		MemberID:    ptr.Ptr(int64(7)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateOccurrence(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO training_sessions .* ON CONFLICT \(recurring_booking_id, start_time\) WHERE recurring_booking_id IS NOT NULL DO NOTHING RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

	_, err := repo.Create(context.Background(), &domain.TrainingSession{
		CoachID:            1,
		RoomID:             10,
		StartTime:          start,
		EndTime:            end,
		SessionKind:        domain.KindIndividual,
		Status:             domain.SessionScheduled,
		RecurringBookingID: ptr.Ptr(int64(3)),
	})

	require.ErrorIs(t, err, ErrDuplicateOccurrence)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO training_sessions`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: occurrenceConstraint})

	_, err := repo.Create(context.Background(), &domain.TrainingSession{RecurringBookingID: ptr.Ptr(int64(3))})
	require.ErrorIs(t, err, ErrDuplicateOccurrence)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM training_sessions WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOverlapping_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM training_sessions WHERE status <> \$1 AND \(coach_id = \$2 OR room_id = \$3\) AND start_time < \$4 AND end_time > \$5 AND id <> \$6 ORDER BY start_time ASC FOR UPDATE`).
		WithArgs("cancelled", int64(1), int64(10), end, start, int64(9)).
		WillReturnRows(sessionRows().
			AddRow(3, 1, 11, start.Add(30*time.Minute), end.Add(30*time.Minute), "INDIVIDUAL", 1, "scheduled", nil, 7, start, start))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	sessions, err := repo.FindOverlapping(ctx, 1, 10, domain.Window{Start: start, End: end}, 9)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(3), sessions[0].ID)
	assert.Nil(t, sessions[0].RecurringBookingID)
	require.NotNil(t, sessions[0].MemberID)
	assert.Equal(t, int64(7), *sessions[0].MemberID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByRecurringAndStart(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM training_sessions WHERE recurring_booking_id = \$1 AND start_time = \$2`).
		WithArgs(int64(3), start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByRecurringAndStart(context.Background(), 3, start)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_CompleteEnded(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := end.Add(time.Minute)

	mock.ExpectExec(`UPDATE training_sessions SET status = \$1, updated_at = \$2 WHERE status = \$3 AND end_time < \$4`).
		WithArgs("completed", now, "scheduled", now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.CompleteEnded(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CancelFutureByRecurring(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`UPDATE training_sessions SET status = \$1, updated_at = \$2 WHERE recurring_booking_id = \$3 AND status = \$4 AND start_time > \$5 RETURNING id`).
		WithArgs("cancelled", start, int64(3), "scheduled", start).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))

	ids, err := repo.CancelFutureByRecurring(context.Background(), 3, start)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotScheduled(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE training_sessions SET status = \$1, updated_at = \$2 WHERE id = \$3 AND status = \$4`).
		WithArgs("cancelled", start, int64(5), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 5, start)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRepository_ListByCoach(t *testing.T) {
	repo, _, mock := newRepo(t)
	status := domain.SessionScheduled

	mock.ExpectQuery(`SELECT .* FROM training_sessions WHERE coach_id = \$1 AND start_time >= \$2 AND start_time < \$3 AND status = \$4 ORDER BY start_time ASC`).
		WithArgs(int64(1), start, end, "scheduled").
		WillReturnRows(sessionRows().
			AddRow(3, 1, 10, start, end, "GROUP", 10, "scheduled", nil, nil, start, start))

	sessions, err := repo.ListByCoach(context.Background(), 1, domain.Window{Start: start, End: end}, &status)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.KindGroup, sessions[0].SessionKind)
	require.NoError(t, mock.ExpectationsWereMet())
}
