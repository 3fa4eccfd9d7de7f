package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// ErrInvalidOccurrence возвращается, когда шаблон дает пустое или некорректное окно
var ErrInvalidOccurrence = errors.New("scheduling: invalid weekly occurrence")

// WeeklyTemplate день недели и время, повторяющиеся каждую неделю
type WeeklyTemplate interface {
	WindowOn(date time.Time, loc *time.Location) (domain.Window, error)
}

// WeeklyOccurrences возвращает ближайшие count еженедельных вхождений шаблона,
// начинающихся строго после from. Прошедшие вхождения пропускаются.
func WeeklyOccurrences(tpl WeeklyTemplate, day time.Weekday, from time.Time, count int, loc *time.Location) ([]domain.Window, error) {
	if count <= 0 {
		return []domain.Window{}, nil
	}

	today := domain.DayBounds(from, loc).Start
	offset := (int(day) - int(today.Weekday()) + 7) % 7
	date := today.AddDate(0, 0, offset)

	first, err := tpl.WindowOn(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOccurrence, err)
	}
	if !first.IsValid() {
		return nil, ErrInvalidOccurrence
	}
	if !first.Start.After(from) {
		date = date.AddDate(0, 0, 7)
	}

	result := make([]domain.Window, 0, count)
	for i := 0; i < count; i++ {
		w, err := tpl.WindowOn(date.AddDate(0, 0, 7*i), loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOccurrence, err)
		}
		result = append(result, w)
	}

	return result, nil
}
