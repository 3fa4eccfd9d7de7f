package materialize_sessions

import "time"

// Причины пропуска вхождения
const (
	GapUnavailable = "unavailable"
	GapConflict    = "conflict"
)

// Request модель запроса на прогон материализации
type Request struct {
	HorizonWeeks int // 0 = значение по умолчанию
}

// Report итоги прогона
type Report struct {
	RunID           string
	WeeksGenerated  int
	SessionsCreated int
	Skipped         int
	Gaps            []Gap
	Errors          []RunError
}

// Gap вхождение шаблона, для которого сессия не создана
type Gap struct {
	RecurringBookingID int64
	StartTime          time.Time
	EndTime            time.Time
	Reason             string
}

// RunError ошибка обработки одного шаблона
type RunError struct {
	RecurringBookingID int64
	Message            string
}

func (r *Report) gapsByReason() map[string]int {
	counts := make(map[string]int)
	for _, g := range r.Gaps {
		counts[g.Reason]++
	}
	return counts
}
