package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

var (
	wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	monday    = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
)

func clock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}

func individualRule(day time.Weekday, start, end string, minutes int) *domain.WeeklyAvailabilityRule {
	return &domain.WeeklyAvailabilityRule{
		CoachID:             1,
		RoomID:              10,
		DayOfWeek:           day,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		SessionKind:         domain.KindIndividual,
		SlotDurationMinutes: minutes,
	}
}

func groupRule(day time.Weekday, start, end string, capacity int) *domain.WeeklyAvailabilityRule {
	return &domain.WeeklyAvailabilityRule{
		CoachID:     1,
		RoomID:      20,
		DayOfWeek:   day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		SessionKind: domain.KindGroup,
		Capacity:    capacity,
	}
}

func TestResolveDay_NoRules(t *testing.T) {
	got := ResolveDay(Snapshot{CoachID: 1}, wednesday, time.UTC)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveDay_OnlyMatchingWeekday(t *testing.T) {
	snap := Snapshot{
		CoachID: 1,
		Rules: []*domain.WeeklyAvailabilityRule{
			individualRule(time.Wednesday, "09:00", "12:00", 60),
			individualRule(time.Thursday, "09:00", "12:00", 60),
		},
	}

	got := ResolveDay(snap, wednesday, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, clock(wednesday, 9, 0), got[0].Start)
	assert.Equal(t, clock(wednesday, 12, 0), got[0].End)
	assert.Equal(t, int64(1), got[0].CoachID)
}

func TestResolveDay_BlockSplitsInterval(t *testing.T) {
	tests := []struct {
		name       string
		blockStart time.Time
		blockEnd   time.Time
		want       []domain.Window
	}{
		{
			name:       "block in the middle splits in two",
			blockStart: clock(wednesday, 10, 0),
			blockEnd:   clock(wednesday, 11, 0),
			want: []domain.Window{
				{Start: clock(wednesday, 9, 0), End: clock(wednesday, 10, 0)},
				{Start: clock(wednesday, 11, 0), End: clock(wednesday, 12, 0)},
			},
		},
		{
			name:       "block at the start trims",
			blockStart: clock(wednesday, 8, 0),
			blockEnd:   clock(wednesday, 10, 0),
			want: []domain.Window{
				{Start: clock(wednesday, 10, 0), End: clock(wednesday, 12, 0)},
			},
		},
		{
			name:       "block covering everything removes it",
			blockStart: clock(wednesday, 0, 0),
			blockEnd:   clock(wednesday, 23, 0),
			want:       []domain.Window{},
		},
		{
			name:       "adjacent block leaves it untouched",
			blockStart: clock(wednesday, 12, 0),
			blockEnd:   clock(wednesday, 13, 0),
			want: []domain.Window{
				{Start: clock(wednesday, 9, 0), End: clock(wednesday, 12, 0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{
				CoachID: 1,
				Rules:   []*domain.WeeklyAvailabilityRule{individualRule(time.Wednesday, "09:00", "12:00", 60)},
				Blocks:  []*domain.BlockedSlot{{CoachID: 1, StartTime: tt.blockStart, EndTime: tt.blockEnd}},
			}

			got := ResolveDay(snap, wednesday, time.UTC)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, tt.want[i].Equal(got[i].Window), "interval %d: got %v", i, got[i].Window)
			}
		})
	}
}

func TestResolveDay_AdditionsMergeOrClip(t *testing.T) {
	snap := Snapshot{
		CoachID: 1,
		Rules:   []*domain.WeeklyAvailabilityRule{individualRule(time.Wednesday, "09:00", "11:00", 60)},
		Additions: []*domain.AvailabilityAddition{
			// та же политика: объединяется с правилом
			{CoachID: 1, RoomID: 10, StartTime: clock(wednesday, 10, 0), EndTime: clock(wednesday, 12, 0),
				SessionKind: domain.KindIndividual, SlotDurationMinutes: 60},
			// групповое окно: обрезается до конца предыдущего
			{CoachID: 1, RoomID: 20, StartTime: clock(wednesday, 11, 30), EndTime: clock(wednesday, 13, 0),
				SessionKind: domain.KindGroup, Capacity: 5},
			// целиком внутри группового окна другой политики: отбрасывается
			{CoachID: 1, RoomID: 30, StartTime: clock(wednesday, 12, 0), EndTime: clock(wednesday, 12, 30),
				SessionKind: domain.KindIndividual, SlotDurationMinutes: 30},
		},
	}

	got := ResolveDay(snap, wednesday, time.UTC)
	require.Len(t, got, 2)

	assert.True(t, domain.Window{Start: clock(wednesday, 9, 0), End: clock(wednesday, 12, 0)}.Equal(got[0].Window))
	assert.Equal(t, domain.KindIndividual, got[0].Kind)

	assert.True(t, domain.Window{Start: clock(wednesday, 12, 0), End: clock(wednesday, 13, 0)}.Equal(got[1].Window))
	assert.Equal(t, domain.KindGroup, got[1].Kind)
	assert.Equal(t, 5, got[1].Capacity)
}

func TestResolveDay_AdditionClippedToDay(t *testing.T) {
	snap := Snapshot{
		CoachID: 1,
		Additions: []*domain.AvailabilityAddition{
			{CoachID: 1, RoomID: 10, StartTime: clock(wednesday, 22, 0), EndTime: clock(wednesday, 22, 0).Add(4 * time.Hour),
				SessionKind: domain.KindIndividual, SlotDurationMinutes: 60},
		},
	}

	got := ResolveDay(snap, wednesday, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, wednesday.AddDate(0, 0, 1), got[0].End)
}

func TestResolveDay_StudioTimezone(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	snap := Snapshot{
		CoachID: 1,
		Rules:   []*domain.WeeklyAvailabilityRule{individualRule(time.Wednesday, "09:00", "10:00", 60)},
	}

	got := ResolveDay(snap, time.Date(2025, 10, 15, 0, 0, 0, 0, msk), msk)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 10, 15, 6, 0, 0, 0, time.UTC), got[0].Start.UTC())
}

// Для любой комбинации правил, блокировок и добавлений результат отсортирован и не пересекается
func TestResolveDay_OutputSortedAndDisjoint(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	kinds := []domain.SessionKind{domain.KindIndividual, domain.KindGroup}

	randomWindow := func() (time.Time, time.Time) {
		start := rnd.Intn(24*4) * 15
		length := (rnd.Intn(16) + 1) * 15
		s := wednesday.Add(time.Duration(start) * time.Minute)
		return s, s.Add(time.Duration(length) * time.Minute)
	}

	for iter := 0; iter < 500; iter++ {
		snap := Snapshot{CoachID: 1}

		for i := rnd.Intn(4); i > 0; i-- {
			s, e := randomWindow()
			if e.After(wednesday.AddDate(0, 0, 1)) {
				continue
			}
			startTS := types.NewTimeString(s)
			endTS, err := types.NewTimeStringFromMinutes(int(e.Sub(wednesday).Minutes()))
			require.NoError(t, err)
			snap.Rules = append(snap.Rules, &domain.WeeklyAvailabilityRule{
				CoachID: 1, RoomID: int64(rnd.Intn(2) + 1), DayOfWeek: time.Wednesday,
				StartTime: startTS, EndTime: endTS, SessionKind: kinds[rnd.Intn(2)],
				Capacity: 5, SlotDurationMinutes: 30,
			})
		}
		for i := rnd.Intn(3); i > 0; i-- {
			s, e := randomWindow()
			snap.Blocks = append(snap.Blocks, &domain.BlockedSlot{CoachID: 1, StartTime: s, EndTime: e})
		}
		for i := rnd.Intn(4); i > 0; i-- {
			s, e := randomWindow()
			snap.Additions = append(snap.Additions, &domain.AvailabilityAddition{
				CoachID: 1, RoomID: int64(rnd.Intn(2) + 1), StartTime: s, EndTime: e,
				SessionKind: kinds[rnd.Intn(2)], Capacity: 5, SlotDurationMinutes: 30,
			})
		}

		got := ResolveDay(snap, wednesday, time.UTC)
		for i := range got {
			require.True(t, got[i].IsValid(), "iteration %d: empty interval %v", iter, got[i].Window)
			if i == 0 {
				continue
			}
			require.False(t, got[i].Start.Before(got[i-1].Start), "iteration %d: not sorted", iter)
			require.False(t, got[i].Overlaps(got[i-1].Window), "iteration %d: overlapping %v and %v",
				iter, got[i-1].Window, got[i].Window)
		}
	}
}

func TestIsOpen(t *testing.T) {
	intervals := []Interval{
		{Window: domain.Window{Start: clock(wednesday, 9, 0), End: clock(wednesday, 10, 0)}},
		{Window: domain.Window{Start: clock(wednesday, 10, 0), End: clock(wednesday, 11, 0)}},
	}

	assert.True(t, IsOpen(intervals, domain.Window{Start: clock(wednesday, 9, 0), End: clock(wednesday, 10, 0)}))
	// пересекает границу двух окон: не содержится ни в одном
	assert.False(t, IsOpen(intervals, domain.Window{Start: clock(wednesday, 9, 30), End: clock(wednesday, 10, 30)}))
	assert.False(t, IsOpen(nil, domain.Window{Start: clock(wednesday, 9, 0), End: clock(wednesday, 10, 0)}))
}
