package scheduling

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

// SlotPolicy правило нарезки открытого окна на слоты для конкретного вида занятий
type SlotPolicy interface {
	Slice(iv Interval, occ Occupancy) []domain.AvailableSlot
}

// PolicyFor единственная точка выбора политики по виду занятия
func PolicyFor(iv Interval) SlotPolicy {
	switch iv.Kind {
	case domain.KindGroup:
		capacity := iv.Capacity
		if capacity < domain.MinCapacity {
			capacity = domain.DefaultGroupCapacity
		}
		return groupPolicy{capacity: capacity}
	default:
		minutes := iv.SlotDurationMinutes
		if minutes <= 0 {
			minutes = domain.DefaultSlotDurationMinutes
		}
		return individualPolicy{duration: time.Duration(minutes) * time.Minute}
	}
}

// individualPolicy шагает по окну с фиксированной длительностью слота.
// Остаток, не кратный длительности, отбрасывается.
type individualPolicy struct {
	duration time.Duration
}

func (p individualPolicy) Slice(iv Interval, occ Occupancy) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)

	for start := iv.Start; !start.Add(p.duration).After(iv.End); start = start.Add(p.duration) {
		candidate := domain.Window{Start: start, End: start.Add(p.duration)}

		if occupied(iv, candidate, occ, 0) {
			continue
		}

		slots = append(slots, domain.AvailableSlot{
			CoachID:     iv.CoachID,
			RoomID:      iv.RoomID,
			StartTime:   candidate.Start,
			EndTime:     candidate.End,
			SessionKind: domain.KindIndividual,
		})
	}

	return slots
}

// groupPolicy выдает все окно одним слотом с учетом занятых мест.
// Слот остается открытым при частичной записи и исчезает при заполнении.
type groupPolicy struct {
	capacity int
}

func (p groupPolicy) Slice(iv Interval, occ Occupancy) []domain.AvailableSlot {
	slot := domain.AvailableSlot{
		CoachID:     iv.CoachID,
		RoomID:      iv.RoomID,
		StartTime:   iv.Start,
		EndTime:     iv.End,
		SessionKind: domain.KindGroup,
		Capacity:    p.capacity,
	}

	var ownSessionID int64
	if session := findGroupSession(iv, occ); session != nil {
		ownSessionID = session.ID
		slot.SessionID = ptr.Ptr(session.ID)
		slot.BookedCount = occ.bookedCount(session.ID)
		if session.Capacity > 0 {
			slot.Capacity = session.Capacity
		}
	}

	if occupied(iv, iv.Window, occ, ownSessionID) {
		return nil
	}

	if slot.IsFull() {
		return nil
	}

	return []domain.AvailableSlot{slot}
}

// findGroupSession ищет групповую сессию тренера, занимающую ровно это окно
func findGroupSession(iv Interval, occ Occupancy) *domain.TrainingSession {
	for _, s := range occ.Sessions {
		if !s.IsActive() || s.SessionKind != domain.KindGroup {
			continue
		}
		if s.CoachID == iv.CoachID && s.RoomID == iv.RoomID && s.Window().Equal(iv.Window) {
			return s
		}
	}
	return nil
}

// occupied true, если окно пересекается с активной сессией того же тренера или того же зала.
// Сессия с id == skipID не учитывается.
func occupied(iv Interval, w domain.Window, occ Occupancy, skipID int64) bool {
	for _, s := range occ.Sessions {
		if !s.IsActive() || (skipID != 0 && s.ID == skipID) {
			continue
		}
		if s.CoachID != iv.CoachID && s.RoomID != iv.RoomID {
			continue
		}
		if s.Window().Overlaps(w) {
			return true
		}
	}
	return false
}
