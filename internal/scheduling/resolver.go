package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// ResolveDay вычисляет открытые окна тренера на календарную дату.
//
// Алгоритм:
//  1. правила с совпадающим днем недели дают базовые окна на эту дату;
//  2. из базовых окон вычитаются все пересекающиеся блокировки (окно может распасться на 0, 1 или 2 части);
//  3. добавляются разовые окна (обрезанные по границам суток);
//  4. окна сортируются по началу; пересекающиеся окна с одинаковой политикой объединяются,
//     окно с другой политикой обрезается до конца предыдущего (или отбрасывается).
//
// Результат отсортирован и попарно не пересекается. Пустой снимок дает пустой результат.
func ResolveDay(snap Snapshot, date time.Time, loc *time.Location) []Interval {
	day := domain.DayBounds(date, loc)
	weekday := day.Start.Weekday()

	base := make([]Interval, 0, len(snap.Rules))
	for _, rule := range snap.Rules {
		if rule.DayOfWeek != weekday {
			continue
		}
		w, err := rule.WindowOn(day.Start, loc)
		if err != nil || !w.IsValid() {
			continue
		}
		base = append(base, Interval{
			Window:              w,
			CoachID:             snap.CoachID,
			RoomID:              rule.RoomID,
			Kind:                rule.SessionKind,
			Capacity:            rule.Capacity,
			SlotDurationMinutes: rule.SlotDurationMinutes,
		})
	}

	for _, block := range snap.Blocks {
		bw := block.Window()
		if !bw.IsValid() || !bw.Overlaps(day) {
			continue
		}
		base = subtract(base, bw)
	}

	for _, add := range snap.Additions {
		w := clip(add.Window(), day)
		if !w.IsValid() {
			continue
		}
		base = append(base, Interval{
			Window:              w,
			CoachID:             snap.CoachID,
			RoomID:              add.RoomID,
			Kind:                add.SessionKind,
			Capacity:            add.Capacity,
			SlotDurationMinutes: add.SlotDurationMinutes,
		})
	}

	return normalize(base)
}

// IsOpen true, если окно целиком лежит внутри одного из открытых окон
func IsOpen(intervals []Interval, w domain.Window) bool {
	for _, iv := range intervals {
		if iv.Contains(w) {
			return true
		}
	}
	return false
}

// ContainingInterval возвращает открытое окно, целиком содержащее w
func ContainingInterval(intervals []Interval, w domain.Window) (Interval, bool) {
	for _, iv := range intervals {
		if iv.Contains(w) {
			return iv, true
		}
	}
	return Interval{}, false
}

// subtract вычитает блокировку из каждого окна
func subtract(intervals []Interval, block domain.Window) []Interval {
	result := make([]Interval, 0, len(intervals)+1)
	for _, iv := range intervals {
		if !iv.Overlaps(block) {
			result = append(result, iv)
			continue
		}
		if iv.Start.Before(block.Start) {
			left := iv
			left.End = block.Start
			result = append(result, left)
		}
		if block.End.Before(iv.End) {
			right := iv
			right.Start = block.End
			result = append(result, right)
		}
	}
	return result
}

// clip обрезает окно по границам bounds
func clip(w, bounds domain.Window) domain.Window {
	if w.Start.Before(bounds.Start) {
		w.Start = bounds.Start
	}
	if w.End.After(bounds.End) {
		w.End = bounds.End
	}
	return w
}

// normalize сортирует окна и устраняет пересечения
func normalize(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		if !intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].Start.Before(intervals[j].Start)
		}
		return intervals[i].End.After(intervals[j].End)
	})

	result := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if len(result) == 0 {
			result = append(result, iv)
			continue
		}

		// Выход отсортирован и не пересекается, поэтому у последнего окна максимальный конец
		last := &result[len(result)-1]
		if !iv.Start.Before(last.End) {
			result = append(result, iv)
			continue
		}

		if last.samePolicy(iv) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}

		iv.Start = last.End
		if iv.IsValid() {
			result = append(result, iv)
		}
	}

	return result
}
