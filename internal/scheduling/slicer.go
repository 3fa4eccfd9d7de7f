package scheduling

import (
	"sort"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// SliceSlots нарезает открытые окна на слоты, исключая занятые.
// Частичное пересечение с занятым окном убирает слот целиком.
func SliceSlots(intervals []Interval, occ Occupancy) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)
	for _, iv := range intervals {
		slots = append(slots, PolicyFor(iv).Slice(iv, occ)...)
	}

	SortSlots(slots)
	return slots
}

// SortSlots упорядочивает слоты по времени начала, при равенстве по ID тренера.
// Используется при объединении слотов нескольких тренеров.
func SortSlots(slots []domain.AvailableSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].StartTime.Before(slots[j].StartTime)
		}
		return slots[i].CoachID < slots[j].CoachID
	})
}
