package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// validateRequest валидирует запрос и возвращает нормализованный список тренеров и границы дат
func validateRequest(req *Request, loc *time.Location) ([]int64, time.Time, time.Time, error) {
	if len(req.CoachIDs) == 0 {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("%w: at least one coachId is required", ErrInvalidInput)
	}

	coachIDs := make([]int64, 0, len(req.CoachIDs))
	seen := make(map[int64]struct{}, len(req.CoachIDs))
	for _, id := range req.CoachIDs {
		if id <= 0 {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("%w: coachId must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		coachIDs = append(coachIDs, id)
	}

	if req.From.IsZero() {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("%w: from is required", ErrInvalidInput)
	}

	from := domain.DayBounds(req.From, loc).Start
	to := from
	if !req.To.IsZero() {
		to = domain.DayBounds(req.To, loc).Start
	}

	if to.Before(from) {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	if days := daysBetween(from, to) + 1; days > MaxRangeDays {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, days, MaxRangeDays)
	}

	return coachIDs, from, to, nil
}

// daysBetween количество календарных дней между полуночами (устойчиво к переходу на летнее время)
func daysBetween(from, to time.Time) int {
	days := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
