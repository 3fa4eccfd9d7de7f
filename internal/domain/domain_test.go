package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func TestWindow_Overlaps(t *testing.T) {
	existing := Window{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name      string
		candidate Window
		want      bool
	}{
		{"partial overlap", Window{Start: at(10, 30), End: at(11, 30)}, true},
		{"contained", Window{Start: at(10, 15), End: at(10, 45)}, true},
		{"same window", Window{Start: at(10, 0), End: at(11, 0)}, true},
		{"back to back before", Window{Start: at(9, 0), End: at(10, 0)}, false},
		{"back to back after", Window{Start: at(11, 0), End: at(12, 0)}, false},
		{"disjoint", Window{Start: at(13, 0), End: at(14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.candidate))
			assert.Equal(t, tt.want, tt.candidate.Overlaps(existing))
		})
	}
}

func TestWindow_Contains(t *testing.T) {
	open := Window{Start: at(9, 0), End: at(12, 0)}

	assert.True(t, open.Contains(Window{Start: at(9, 0), End: at(12, 0)}))
	assert.True(t, open.Contains(Window{Start: at(10, 0), End: at(11, 0)}))
	assert.False(t, open.Contains(Window{Start: at(8, 30), End: at(9, 30)}))
	assert.False(t, open.Contains(Window{Start: at(11, 30), End: at(12, 30)}))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	day := DayBounds(time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, loc), day.Start)
	assert.Equal(t, 24*time.Hour, day.Duration())
}

func TestTrainingSession_CanTransitionTo(t *testing.T) {
	scheduled := &TrainingSession{Status: SessionScheduled}
	assert.True(t, scheduled.CanTransitionTo(SessionCompleted))
	assert.True(t, scheduled.CanTransitionTo(SessionCancelled))
	assert.False(t, scheduled.CanTransitionTo(SessionScheduled))

	for _, terminal := range []SessionStatus{SessionCompleted, SessionCancelled} {
		s := &TrainingSession{Status: terminal}
		assert.False(t, s.CanTransitionTo(SessionScheduled))
		assert.False(t, s.CanTransitionTo(SessionCompleted))
		assert.False(t, s.CanTransitionTo(SessionCancelled))
	}
}

func TestActor_CancelStatus(t *testing.T) {
	assert.Equal(t, BookingCancelledByMember, ActorMember.CancelStatus())
	assert.Equal(t, BookingCancelledByCoach, ActorCoach.CancelStatus())
	assert.Equal(t, BookingCancelledByCoach, ActorAdmin.CancelStatus())
}

func TestAvailableSlot_IsFull(t *testing.T) {
	group := &AvailableSlot{SessionKind: KindGroup, Capacity: 10, BookedCount: 9}
	assert.False(t, group.IsFull())
	assert.Equal(t, 1, group.AvailableSpots())

	group.BookedCount = 10
	assert.True(t, group.IsFull())
	assert.Equal(t, 0, group.AvailableSpots())

	individual := &AvailableSlot{SessionKind: KindIndividual}
	assert.False(t, individual.IsFull())
}
