package conflictguard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	directoryRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/directory"
	sessionRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/session"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
	"github.com/m04kA/SMC-CoachScheduler/pkg/txmanager"
)

type fakeSessions struct {
	sessions []*domain.TrainingSession
	nextID   int64
}

func (f *fakeSessions) Create(_ context.Context, s *domain.TrainingSession) (*domain.TrainingSession, error) {
	for _, existing := range f.sessions {
		if s.RecurringBookingID != nil && existing.RecurringBookingID != nil &&
			*existing.RecurringBookingID == *s.RecurringBookingID && existing.StartTime.Equal(s.StartTime) {
			return nil, sessionRepo.ErrDuplicateOccurrence
		}
	}
	f.nextID++
	s.ID = f.nextID
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeSessions) GetByID(_ context.Context, id int64) (*domain.TrainingSession, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func (f *fakeSessions) FindOverlapping(_ context.Context, coachID, roomID int64, w domain.Window, excludeID int64) ([]*domain.TrainingSession, error) {
	var out []*domain.TrainingSession
	for _, s := range f.sessions {
		if s.ID == excludeID || !s.IsActive() {
			continue
		}
		if (s.CoachID == coachID || s.RoomID == roomID) && s.Window().Overlaps(w) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessions) Move(_ context.Context, id int64, w domain.Window, _ time.Time) error {
	for _, s := range f.sessions {
		if s.ID == id {
			s.StartTime, s.EndTime = w.Start, w.End
			return nil
		}
	}
	return sessionRepo.ErrInvalidTransition
}

type fakeDirectory struct {
	coaches map[int64]bool
	rooms   map[int64]bool
}

func (f *fakeDirectory) GetCoach(_ context.Context, id int64) (*domain.Coach, error) {
	if !f.coaches[id] {
		return nil, directoryRepo.ErrCoachNotFound
	}
	return &domain.Coach{ID: id}, nil
}

func (f *fakeDirectory) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	if !f.rooms[id] {
		return nil, directoryRepo.ErrRoomNotFound
	}
	return &domain.Room{ID: id}, nil
}

type fakeTx struct {
	err error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type countingRecorder struct {
	count int
}

func (c *countingRecorder) RecordConflict() { c.count++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var base = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

func newService(tx *fakeTx) (*Service, *fakeSessions, *countingRecorder) {
	sessions := &fakeSessions{}
	recorder := &countingRecorder{}
	svc := NewService(
		sessions,
		&fakeDirectory{coaches: map[int64]bool{1: true, 2: true}, rooms: map[int64]bool{10: true, 11: true}},
		tx,
		recorder,
		nopLogger{},
	)
	svc.timeProvider = fixedTime{now: base.Add(-24 * time.Hour)}
	return svc, sessions, recorder
}

func individual(coachID, roomID int64, start time.Time, minutes int) *ReserveRequest {
	return &ReserveRequest{
		CoachID:  coachID,
		RoomID:   roomID,
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		Kind:     domain.KindIndividual,
		Capacity: 1,
		MemberID: ptr.Ptr(int64(7)),
	}
}

func TestReserve_BackToBackAllowed(t *testing.T) {
	svc, sessions, _ := newService(&fakeTx{})
	ctx := context.Background()

	_, err := svc.Reserve(ctx, individual(1, 10, base, 60))
	require.NoError(t, err)

	second, err := svc.Reserve(ctx, individual(1, 10, base.Add(time.Hour), 60))
	require.NoError(t, err)
	assert.Equal(t, domain.SessionScheduled, second.Status)
	assert.Len(t, sessions.sessions, 2)
}

func TestReserve_Overlaps(t *testing.T) {
	tests := []struct {
		name    string
		request *ReserveRequest
	}{
		{name: "same coach, other room", request: individual(1, 11, base.Add(30*time.Minute), 60)},
		{name: "other coach, same room", request: individual(2, 10, base.Add(59*time.Minute), 30)},
		{name: "same window", request: individual(1, 10, base, 60)},
		{name: "enclosing window", request: individual(2, 10, base.Add(-time.Hour), 180)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sessions, recorder := newService(&fakeTx{})
			ctx := context.Background()

			_, err := svc.Reserve(ctx, individual(1, 10, base, 60))
			require.NoError(t, err)

			_, err = svc.Reserve(ctx, tt.request)
			require.ErrorIs(t, err, ErrConflict)
			assert.Len(t, sessions.sessions, 1)
			assert.Equal(t, 1, recorder.count)
		})
	}
}

func TestReserve_CancelledSessionDoesNotConflict(t *testing.T) {
	svc, sessions, _ := newService(&fakeTx{})
	ctx := context.Background()

	first, err := svc.Reserve(ctx, individual(1, 10, base, 60))
	require.NoError(t, err)
	first.Status = domain.SessionCancelled

	_, err = svc.Reserve(ctx, individual(1, 10, base, 60))
	require.NoError(t, err)
	assert.Len(t, sessions.sessions, 2)
}

func TestReserve_Validation(t *testing.T) {
	svc, _, _ := newService(&fakeTx{})

	req := individual(1, 10, base, 60)
	req.End = req.Start

	_, err := svc.Reserve(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)

	group := individual(1, 10, base, 60)
	group.Kind = domain.KindGroup
	group.Capacity = 0
	_, err = svc.Reserve(context.Background(), group)
	require.ErrorIs(t, err, ErrValidation)
}

func TestReserve_UnknownReferences(t *testing.T) {
	svc, _, _ := newService(&fakeTx{})

	_, err := svc.Reserve(context.Background(), individual(99, 10, base, 60))
	require.ErrorIs(t, err, ErrCoachNotFound)

	_, err = svc.Reserve(context.Background(), individual(1, 99, base, 60))
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestReserve_DuplicateOccurrence(t *testing.T) {
	svc, _, _ := newService(&fakeTx{})
	ctx := context.Background()

	req := individual(1, 10, base, 60)
	req.RecurringBookingID = ptr.Ptr(int64(3))
	_, err := svc.Reserve(ctx, req)
	require.NoError(t, err)

	// Другой зал и тренер, чтобы дойти до вставки
	dup := individual(2, 11, base, 60)
	dup.RecurringBookingID = ptr.Ptr(int64(3))
	_, err = svc.Reserve(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicateOccurrence)
}

func TestReserve_SerializationFailureIsConflict(t *testing.T) {
	failure := fmt.Errorf("%w: %w", txmanager.ErrSerializationFailure, errors.New("40001"))
	svc, _, recorder := newService(&fakeTx{err: failure})

	_, err := svc.Reserve(context.Background(), individual(1, 10, base, 60))
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, recorder.count)
}

func TestMove(t *testing.T) {
	svc, _, _ := newService(&fakeTx{})
	ctx := context.Background()

	first, err := svc.Reserve(ctx, individual(1, 10, base, 60))
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, individual(1, 10, base.Add(2*time.Hour), 60))
	require.NoError(t, err)

	// Перенос с частичным пересечением самой себя разрешен
	moved, err := svc.Move(ctx, first.ID, domain.Window{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, base.Add(30*time.Minute), moved.StartTime)

	_, err = svc.Move(ctx, first.ID, domain.Window{Start: base.Add(90 * time.Minute), End: base.Add(150 * time.Minute)})
	require.ErrorIs(t, err, ErrConflict)
}

func TestMove_RejectsGeneratedAndFinished(t *testing.T) {
	svc, sessions, _ := newService(&fakeTx{})
	ctx := context.Background()
	target := domain.Window{Start: base.Add(5 * time.Hour), End: base.Add(6 * time.Hour)}

	req := individual(1, 10, base, 60)
	req.RecurringBookingID = ptr.Ptr(int64(3))
	generated, err := svc.Reserve(ctx, req)
	require.NoError(t, err)

	_, err = svc.Move(ctx, generated.ID, target)
	require.ErrorIs(t, err, ErrNotMovable)

	done, err := svc.Reserve(ctx, individual(2, 11, base, 60))
	require.NoError(t, err)
	sessions.sessions[1].Status = domain.SessionCompleted

	_, err = svc.Move(ctx, done.ID, target)
	require.ErrorIs(t, err, ErrNotMovable)

	_, err = svc.Move(ctx, 404, target)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
