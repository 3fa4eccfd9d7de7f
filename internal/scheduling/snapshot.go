package scheduling

import "github.com/m04kA/SMC-CoachScheduler/internal/domain"

// Snapshot срез правил и исключений одного тренера на момент запроса.
// Вызывающая сторона загружает его один раз и передает в чистые функции пакета.
type Snapshot struct {
	CoachID   int64
	Rules     []*domain.WeeklyAvailabilityRule
	Blocks    []*domain.BlockedSlot
	Additions []*domain.AvailabilityAddition
}

// Interval открытое окно доступности вместе с политикой нарезки слотов
type Interval struct {
	domain.Window
	CoachID             int64
	RoomID              int64
	Kind                domain.SessionKind
	Capacity            int
	SlotDurationMinutes int
}

// samePolicy true, если два окна можно объединить в одно без потери смысла
func (iv Interval) samePolicy(other Interval) bool {
	return iv.Kind == other.Kind &&
		iv.RoomID == other.RoomID &&
		iv.Capacity == other.Capacity &&
		iv.SlotDurationMinutes == other.SlotDurationMinutes
}

// Occupancy занятость на дату: активные сессии тренера и залов,
// а также число подтвержденных записей по каждой сессии
type Occupancy struct {
	Sessions     []*domain.TrainingSession
	BookedCounts map[int64]int
}

// bookedCount количество подтвержденных записей на сессию
func (o Occupancy) bookedCount(sessionID int64) int {
	if o.BookedCounts == nil {
		return 0
	}
	return o.BookedCounts[sessionID]
}
