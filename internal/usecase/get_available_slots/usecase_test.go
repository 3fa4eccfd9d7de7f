package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

var (
	monday    = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fakeAvailability struct {
	rules     []*domain.WeeklyAvailabilityRule
	blocks    []*domain.BlockedSlot
	additions []*domain.AvailabilityAddition
}

func (f *fakeAvailability) ListRulesByCoaches(_ context.Context, coachIDs []int64) ([]*domain.WeeklyAvailabilityRule, error) {
	out := make([]*domain.WeeklyAvailabilityRule, 0)
	for _, r := range f.rules {
		if contains(coachIDs, r.CoachID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAvailability) ListBlocksInRange(_ context.Context, coachIDs []int64, w domain.Window) ([]*domain.BlockedSlot, error) {
	out := make([]*domain.BlockedSlot, 0)
	for _, b := range f.blocks {
		if contains(coachIDs, b.CoachID) && b.Window().Overlaps(w) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAvailability) ListAdditionsInRange(_ context.Context, coachIDs []int64, w domain.Window) ([]*domain.AvailabilityAddition, error) {
	out := make([]*domain.AvailabilityAddition, 0)
	for _, a := range f.additions {
		if contains(coachIDs, a.CoachID) && a.Window().Overlaps(w) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSessions struct {
	sessions     []*domain.TrainingSession
	roomsQueried []int64
}

func (f *fakeSessions) ListActiveInRange(_ context.Context, coachIDs, roomIDs []int64, w domain.Window) ([]*domain.TrainingSession, error) {
	f.roomsQueried = roomIDs
	out := make([]*domain.TrainingSession, 0)
	for _, s := range f.sessions {
		if s.IsActive() && (contains(coachIDs, s.CoachID) || contains(roomIDs, s.RoomID)) && s.Window().Overlaps(w) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeBookings map[int64]int

func (f fakeBookings) CountConfirmedBySessions(_ context.Context, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int)
	for _, id := range ids {
		if c, ok := f[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

type fakeDirectory []*domain.Coach

func (f fakeDirectory) GetCoachesByIDs(_ context.Context, ids []int64) ([]*domain.Coach, error) {
	out := make([]*domain.Coach, 0)
	for _, c := range f {
		if contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func studio() (*fakeAvailability, *fakeSessions, fakeBookings) {
	availability := &fakeAvailability{
		rules: []*domain.WeeklyAvailabilityRule{
			{
				CoachID: 1, RoomID: 10, DayOfWeek: time.Wednesday,
				StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00"),
				SessionKind: domain.KindIndividual, Capacity: 1, SlotDurationMinutes: 30,
			},
			{
				CoachID: 2, RoomID: 11, DayOfWeek: time.Wednesday,
				StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00"),
				SessionKind: domain.KindGroup, Capacity: 10,
			},
		},
	}

	sessions := &fakeSessions{
		sessions: []*domain.TrainingSession{
			{
				ID: 5, CoachID: 2, RoomID: 11,
				StartTime: at(wednesday, 9, 0), EndTime: at(wednesday, 10, 0),
				SessionKind: domain.KindGroup, Capacity: 10, Status: domain.SessionScheduled,
			},
		},
	}

	return availability, sessions, fakeBookings{5: 3}
}

func newUseCase(a *fakeAvailability, s *fakeSessions, b fakeBookings, now time.Time) *UseCase {
	uc := NewUseCase(a, s, b, fakeDirectory{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Boris"}}, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime(now)
	return uc
}

func TestExecute_MergesCoachesAndSorts(t *testing.T) {
	a, s, b := studio()
	uc := newUseCase(a, s, b, at(monday, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{2, 1}, From: monday, To: wednesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, int64(1), resp.Slots[0].CoachID)
	assert.Equal(t, "Anna", resp.Slots[0].CoachName)
	assert.Equal(t, at(wednesday, 9, 0), resp.Slots[0].StartTime)
	assert.Nil(t, resp.Slots[0].Capacity)

	group := resp.Slots[1]
	assert.Equal(t, int64(2), group.CoachID)
	assert.Equal(t, domain.KindGroup, group.SessionKind)
	require.NotNil(t, group.Capacity)
	require.NotNil(t, group.BookedCount)
	assert.Equal(t, 10, *group.Capacity)
	assert.Equal(t, 3, *group.BookedCount)

	assert.Equal(t, at(wednesday, 9, 30), resp.Slots[2].StartTime)
	assert.ElementsMatch(t, []int64{10, 11}, s.roomsQueried)
}

func TestExecute_FullGroupSessionHidden(t *testing.T) {
	a, s, _ := studio()
	uc := newUseCase(a, s, fakeBookings{5: 10}, at(monday, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{2}, From: wednesday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastSlotsFiltered(t *testing.T) {
	a, s, b := studio()
	uc := newUseCase(a, s, b, at(wednesday, 9, 10))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{1, 2}, From: wednesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(wednesday, 9, 30), resp.Slots[0].StartTime)
}

func TestExecute_RoomOccupiedByAnotherCoach(t *testing.T) {
	a, s, b := studio()
	s.sessions = append(s.sessions, &domain.TrainingSession{
		ID: 6, CoachID: 3, RoomID: 10,
		StartTime: at(wednesday, 9, 0), EndTime: at(wednesday, 9, 30),
		SessionKind: domain.KindIndividual, Capacity: 1, Status: domain.SessionScheduled,
	})
	uc := newUseCase(a, s, b, at(monday, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{1}, From: wednesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(wednesday, 9, 30), resp.Slots[0].StartTime)
}

func TestExecute_AdditionAndBlock(t *testing.T) {
	a, s, b := studio()
	a.blocks = []*domain.BlockedSlot{{CoachID: 1, StartTime: at(wednesday, 9, 0), EndTime: at(wednesday, 9, 30)}}
	a.additions = []*domain.AvailabilityAddition{{
		CoachID: 1, RoomID: 10,
		StartTime: at(monday, 18, 0), EndTime: at(monday, 19, 0),
		SessionKind: domain.KindIndividual, Capacity: 1, SlotDurationMinutes: 60,
	}}
	uc := newUseCase(a, s, b, at(monday, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{1}, From: monday, To: wednesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, at(monday, 18, 0), resp.Slots[0].StartTime)
	assert.Equal(t, at(wednesday, 9, 30), resp.Slots[1].StartTime)
}

func TestExecute_UnknownCoachesYieldNothing(t *testing.T) {
	a, s, b := studio()
	uc := newUseCase(a, s, b, at(monday, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{99}, From: wednesday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "no coaches", req: &Request{From: monday}, want: ErrInvalidInput},
		{name: "negative coach", req: &Request{CoachIDs: []int64{-1}, From: monday}, want: ErrInvalidInput},
		{name: "no from", req: &Request{CoachIDs: []int64{1}}, want: ErrInvalidInput},
		{name: "to before from", req: &Request{CoachIDs: []int64{1}, From: wednesday, To: monday}, want: ErrInvalidInput},
		{name: "range too long", req: &Request{CoachIDs: []int64{1}, From: monday, To: monday.AddDate(0, 0, 31)}, want: ErrRangeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, s, b := studio()
			uc := newUseCase(a, s, b, at(monday, 8, 0))

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_MaxRangeAccepted(t *testing.T) {
	a, s, b := studio()
	uc := newUseCase(a, s, b, at(monday, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{CoachIDs: []int64{1}, From: monday, To: monday.AddDate(0, 0, 30)})
	require.NoError(t, err)
	// пять сред по два слота
	assert.Len(t, resp.Slots, 10)
}
