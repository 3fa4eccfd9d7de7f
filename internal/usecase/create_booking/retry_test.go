package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/txmanager"
)

// serializationGuard отдает ошибку сериализации failures раз, затем резервирует через fakeGuard
type serializationGuard struct {
	next     *fakeGuard
	failures int
	calls    int
}

func (g *serializationGuard) Reserve(ctx context.Context, req *conflictguard.ReserveRequest) (*domain.TrainingSession, error) {
	g.calls++
	if g.calls <= g.failures {
		return nil, fmt.Errorf("%w: Check - find overlapping: %w", conflictguard.ErrInternal, &pq.Error{Code: "40001"})
	}
	return g.next.Reserve(ctx, req)
}

func newUseCaseWithTx(t *testing.T, failures int) (*UseCase, *serializationGuard, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := &store{}
	guard := &serializationGuard{next: &fakeGuard{store: st}, failures: failures}
	tx := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil))

	uc := NewUseCase(&fakeAvailability{rules: studioRules()}, st, st, guard, &recordingPublisher{}, tx, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime(now)
	return uc, guard, mock
}

func TestExecute_RetriesSerializationFailure(t *testing.T) {
	uc, guard, mock := newUseCaseWithTx(t, 1)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:    member(7),
		CoachID:   1,
		StartTime: at(9, 0),
		EndTime:   at(9, 30),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, guard.calls)
	assert.Equal(t, int64(7), resp.MemberID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_SerializationFailureAfterRetriesIsConflict(t *testing.T) {
	uc, guard, mock := newUseCaseWithTx(t, 100)

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	_, err := uc.Execute(context.Background(), &Request{
		Caller:    member(7),
		CoachID:   1,
		StartTime: at(9, 0),
		EndTime:   at(9, 30),
	})

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 3, guard.calls)
	require.NoError(t, mock.ExpectationsWereMet())
}
