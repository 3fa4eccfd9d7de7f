package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

var (
	now       = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC) // понедельник
	wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
)

func at(hour, minute int) time.Time {
	return wednesday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fakeAvailability struct {
	rules  []*domain.WeeklyAvailabilityRule
	blocks []*domain.BlockedSlot
}

func (f *fakeAvailability) ListRulesByCoaches(context.Context, []int64) ([]*domain.WeeklyAvailabilityRule, error) {
	return f.rules, nil
}

func (f *fakeAvailability) ListBlocksInRange(context.Context, []int64, domain.Window) ([]*domain.BlockedSlot, error) {
	return f.blocks, nil
}

func (f *fakeAvailability) ListAdditionsInRange(context.Context, []int64, domain.Window) ([]*domain.AvailabilityAddition, error) {
	return nil, nil
}

// store общее хранилище сессий и записей для фейков
type store struct {
	sessions []*domain.TrainingSession
	bookings []*domain.Booking
}

func (s *store) FindOverlapping(_ context.Context, coachID, roomID int64, w domain.Window, excludeID int64) ([]*domain.TrainingSession, error) {
	out := make([]*domain.TrainingSession, 0)
	for _, sess := range s.sessions {
		if !sess.IsActive() || sess.ID == excludeID {
			continue
		}
		if (sess.CoachID == coachID || sess.RoomID == roomID) && sess.Window().Overlaps(w) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *store) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	for _, existing := range s.bookings {
		if existing.SessionID == b.SessionID && existing.MemberID == b.MemberID && existing.IsActive() {
			return nil, bookingRepo.ErrAlreadyBooked
		}
	}
	b.ID = int64(100 + len(s.bookings))
	s.bookings = append(s.bookings, b)
	return b, nil
}

func (s *store) CountConfirmedBySessions(_ context.Context, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int)
	for _, b := range s.bookings {
		for _, id := range ids {
			if b.SessionID == id && b.IsActive() {
				out[id]++
			}
		}
	}
	return out, nil
}

type fakeGuard struct {
	store *store
}

func (g *fakeGuard) Reserve(ctx context.Context, req *conflictguard.ReserveRequest) (*domain.TrainingSession, error) {
	overlapping, _ := g.store.FindOverlapping(ctx, req.CoachID, req.RoomID, req.Window(), req.ExcludeSessionID)
	if len(overlapping) > 0 {
		return nil, conflictguard.ErrConflict
	}
	s := &domain.TrainingSession{
		ID:          int64(len(g.store.sessions) + 1),
		CoachID:     req.CoachID,
		RoomID:      req.RoomID,
		StartTime:   req.Start,
		EndTime:     req.End,
		SessionKind: req.Kind,
		Capacity:    req.Capacity,
		Status:      domain.SessionScheduled,
		MemberID:    req.MemberID,
	}
	g.store.sessions = append(g.store.sessions, s)
	return s, nil
}

type recordingPublisher struct {
	reserved []events.SessionReserved
}

func (p *recordingPublisher) PublishSessionReserved(_ context.Context, e events.SessionReserved) error {
	p.reserved = append(p.reserved, e)
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

func studioRules() []*domain.WeeklyAvailabilityRule {
	return []*domain.WeeklyAvailabilityRule{
		{
			CoachID: 1, RoomID: 10, DayOfWeek: time.Wednesday,
			StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00"),
			SessionKind: domain.KindIndividual, Capacity: 1, SlotDurationMinutes: 30,
		},
		{
			CoachID: 1, RoomID: 11, DayOfWeek: time.Wednesday,
			StartTime: types.TimeString("18:00"), EndTime: types.TimeString("19:00"),
			SessionKind: domain.KindGroup, Capacity: 2,
		},
	}
}

func newUseCase() (*UseCase, *fakeAvailability, *store, *recordingPublisher) {
	availability := &fakeAvailability{rules: studioRules()}
	st := &store{}
	pub := &recordingPublisher{}

	uc := NewUseCase(availability, st, st, &fakeGuard{store: st}, pub, fakeTx{}, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime(now)
	return uc, availability, st, pub
}

func member(id int64) domain.Caller {
	return domain.Caller{UserID: id, Role: domain.ActorMember}
}

func TestExecute_IndividualReserve(t *testing.T) {
	uc, _, st, pub := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller: member(7), CoachID: 1, StartTime: at(9, 30), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.MemberID)
	assert.Equal(t, int64(10), resp.RoomID)
	assert.Equal(t, domain.KindIndividual, resp.SessionKind)
	assert.Equal(t, domain.BookingConfirmed, resp.Status)
	require.Len(t, st.sessions, 1)
	require.NotNil(t, st.sessions[0].MemberID)
	assert.Equal(t, int64(7), *st.sessions[0].MemberID)

	require.Len(t, pub.reserved, 1)
	assert.Equal(t, resp.SessionID, pub.reserved[0].SessionID)
}

func TestExecute_IndividualConflict(t *testing.T) {
	uc, _, _, pub := newUseCase()
	req := &Request{Caller: member(7), CoachID: 1, StartTime: at(9, 0), EndTime: at(9, 30)}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.Caller = member(8)
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, pub.reserved, 1)
}

func TestExecute_WindowMustMatchSlot(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		roomID     int64
	}{
		{name: "off grid", start: at(9, 15), end: at(9, 45)},
		{name: "wrong duration", start: at(9, 0), end: at(10, 0)},
		{name: "outside availability", start: at(12, 0), end: at(12, 30)},
		{name: "partial group window", start: at(18, 0), end: at(18, 30)},
		{name: "other room", start: at(9, 0), end: at(9, 30), roomID: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _, _ := newUseCase()
			_, err := uc.Execute(context.Background(), &Request{
				Caller: member(7), CoachID: 1, RoomID: tt.roomID, StartTime: tt.start, EndTime: tt.end,
			})
			require.ErrorIs(t, err, ErrSlotNotAvailable)
		})
	}
}

func TestExecute_BlockedWindow(t *testing.T) {
	uc, availability, _, _ := newUseCase()
	availability.blocks = []*domain.BlockedSlot{{CoachID: 1, StartTime: at(9, 20), EndTime: at(9, 40)}}

	_, err := uc.Execute(context.Background(), &Request{
		Caller: member(7), CoachID: 1, StartTime: at(9, 0), EndTime: at(9, 30),
	})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_GroupJoinUntilFull(t *testing.T) {
	uc, _, st, _ := newUseCase()
	req := func(memberID int64) *Request {
		return &Request{Caller: member(memberID), CoachID: 1, StartTime: at(18, 0), EndTime: at(19, 0)}
	}

	first, err := uc.Execute(context.Background(), req(7))
	require.NoError(t, err)
	assert.Equal(t, domain.KindGroup, first.SessionKind)
	assert.Equal(t, 1, first.BookedCount)
	assert.Equal(t, 2, first.Capacity)

	_, err = uc.Execute(context.Background(), req(7))
	require.ErrorIs(t, err, ErrAlreadyBooked)

	second, err := uc.Execute(context.Background(), req(8))
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, 2, second.BookedCount)

	_, err = uc.Execute(context.Background(), req(9))
	require.ErrorIs(t, err, ErrSessionFull)

	assert.Len(t, st.sessions, 1)
	assert.Len(t, st.bookings, 2)
}

func TestExecute_GroupWindowOccupiedByOtherSession(t *testing.T) {
	uc, _, st, _ := newUseCase()
	st.sessions = append(st.sessions, &domain.TrainingSession{
		ID: 50, CoachID: 2, RoomID: 11, StartTime: at(18, 30), EndTime: at(19, 30),
		SessionKind: domain.KindIndividual, Capacity: 1, Status: domain.SessionScheduled,
	})

	_, err := uc.Execute(context.Background(), &Request{
		Caller: member(7), CoachID: 1, StartTime: at(18, 0), EndTime: at(19, 0),
	})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "missing coach", req: &Request{Caller: member(7), StartTime: at(9, 0), EndTime: at(9, 30)}, want: ErrInvalidInput},
		{name: "end before start", req: &Request{Caller: member(7), CoachID: 1, StartTime: at(9, 30), EndTime: at(9, 0)}, want: ErrInvalidInput},
		{name: "in the past", req: &Request{Caller: member(7), CoachID: 1, StartTime: now.Add(-time.Hour), EndTime: now.Add(-30 * time.Minute)}, want: ErrInvalidInput},
		{name: "member for other member", req: &Request{Caller: member(7), MemberID: 8, CoachID: 1, StartTime: at(9, 0), EndTime: at(9, 30)}, want: ErrAccessDenied},
		{name: "admin without member", req: &Request{Caller: domain.Caller{UserID: 1, Role: domain.ActorAdmin}, CoachID: 1, StartTime: at(9, 0), EndTime: at(9, 30)}, want: ErrInvalidInput},
		{name: "foreign coach", req: &Request{Caller: domain.Caller{UserID: 2, Role: domain.ActorCoach}, MemberID: 7, CoachID: 1, StartTime: at(9, 0), EndTime: at(9, 30)}, want: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _, _ := newUseCase()
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_AdminBooksForMember(t *testing.T) {
	uc, _, _, _ := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:    domain.Caller{UserID: 1, Role: domain.ActorAdmin},
		MemberID:  7,
		CoachID:   1,
		StartTime: at(9, 0),
		EndTime:   at(9, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.MemberID)
}
