package cancel_recurring_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	recurringRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

var now = time.Date(2025, 10, 22, 9, 30, 0, 0, time.UTC)

// store хранилище шаблона, его сессий и записей
type store struct {
	templates map[int64]*domain.RecurringBooking
	sessions  []*domain.TrainingSession
	bookings  []*domain.Booking
}

func (s *store) GetByID(_ context.Context, id int64) (*domain.RecurringBooking, error) {
	rb, ok := s.templates[id]
	if !ok {
		return nil, recurringRepo.ErrRecurringBookingNotFound
	}
	return rb, nil
}

func (s *store) Deactivate(_ context.Context, id int64, _ time.Time) error {
	s.templates[id].Active = false
	return nil
}

func (s *store) CancelFutureByRecurring(_ context.Context, id int64, after time.Time) ([]int64, error) {
	ids := make([]int64, 0)
	for _, sess := range s.sessions {
		if sess.RecurringBookingID != nil && *sess.RecurringBookingID == id &&
			sess.Status == domain.SessionScheduled && sess.StartTime.After(after) {
			sess.Status = domain.SessionCancelled
			ids = append(ids, sess.ID)
		}
	}
	return ids, nil
}

func (s *store) CancelBySessions(_ context.Context, ids []int64, status domain.BookingStatus, _ string, _ time.Time) (int64, error) {
	var count int64
	for _, b := range s.bookings {
		for _, id := range ids {
			if b.SessionID == id && b.Status == domain.BookingConfirmed {
				b.Status = status
				count++
			}
		}
	}
	return count, nil
}

type recordingPublisher struct {
	events []events.RecurringBookingCancelled
}

func (p *recordingPublisher) PublishRecurringBookingCancelled(_ context.Context, e events.RecurringBookingCancelled) error {
	p.events = append(p.events, e)
	return nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// newStore шаблон 3 (тренер 1, участник 7) с сессиями на 15, 22 и 29 октября в 09:00
func newStore() *store {
	st := &store{
		templates: map[int64]*domain.RecurringBooking{
			3: {ID: 3, CoachID: 1, MemberID: 7, RoomID: 10, DayOfWeek: time.Wednesday, Active: true},
		},
	}

	for i, day := range []int{15, 22, 29} {
		start := time.Date(2025, 10, day, 9, 0, 0, 0, time.UTC)
		id := int64(i + 1)
		st.sessions = append(st.sessions, &domain.TrainingSession{
			ID: id, CoachID: 1, RoomID: 10, StartTime: start, EndTime: start.Add(time.Hour),
			SessionKind: domain.KindIndividual, Capacity: 1, Status: domain.SessionScheduled,
			RecurringBookingID: ptr.Ptr(int64(3)), MemberID: ptr.Ptr(int64(7)),
		})
		st.bookings = append(st.bookings, &domain.Booking{ID: 100 + id, SessionID: id, MemberID: 7, Status: domain.BookingConfirmed})
	}
	st.sessions[0].Status = domain.SessionCompleted

	return st
}

func newUseCase(st *store) (*UseCase, *recordingPublisher) {
	pub := &recordingPublisher{}
	uc := NewUseCase(st, st, st, pub, fakeTx{}, nopLogger{})
	uc.timeProvider = fixedTime(now)
	return uc, pub
}

func TestExecute_CancelsOnlyFutureSessions(t *testing.T) {
	st := newStore()
	uc, pub := newUseCase(st)

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:             domain.Caller{UserID: 7, Role: domain.ActorMember},
		RecurringBookingID: 3,
	})
	require.NoError(t, err)

	// сессия 22 октября уже идет (началась в 09:00 < now), ее не трогаем
	assert.Equal(t, []int64{3}, resp.CancelledSessions)
	assert.Equal(t, int64(1), resp.CancelledBookings)
	assert.False(t, st.templates[3].Active)

	assert.Equal(t, domain.SessionCompleted, st.sessions[0].Status)
	assert.Equal(t, domain.SessionScheduled, st.sessions[1].Status)
	assert.Equal(t, domain.SessionCancelled, st.sessions[2].Status)
	assert.Equal(t, domain.BookingConfirmed, st.bookings[1].Status)
	assert.Equal(t, domain.BookingCancelledByMember, st.bookings[2].Status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, int64(7), pub.events[0].MemberID)
	assert.Equal(t, "member", pub.events[0].CancelledBy)
}

func TestExecute_CoachCancelStatus(t *testing.T) {
	st := newStore()
	uc, _ := newUseCase(st)

	_, err := uc.Execute(context.Background(), &Request{
		Caller:             domain.Caller{UserID: 1, Role: domain.ActorCoach},
		RecurringBookingID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelledByCoach, st.bookings[2].Status)
}

func TestExecute_SecondCancelIsNoop(t *testing.T) {
	st := newStore()
	uc, _ := newUseCase(st)
	req := &Request{Caller: domain.Caller{Role: domain.ActorAdmin}, RecurringBookingID: 3}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.CancelledSessions)
	assert.Zero(t, resp.CancelledBookings)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "not found", req: &Request{Caller: domain.Caller{Role: domain.ActorAdmin}, RecurringBookingID: 99}, want: ErrRecurringBookingNotFound},
		{name: "other member", req: &Request{Caller: domain.Caller{UserID: 8, Role: domain.ActorMember}, RecurringBookingID: 3}, want: ErrAccessDenied},
		{name: "other coach", req: &Request{Caller: domain.Caller{UserID: 2, Role: domain.ActorCoach}, RecurringBookingID: 3}, want: ErrAccessDenied},
		{name: "bad id", req: &Request{Caller: domain.Caller{Role: domain.ActorAdmin}}, want: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore()
			uc, pub := newUseCase(st)

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, st.templates[3].Active)
			assert.Empty(t, pub.events)
		})
	}
}
