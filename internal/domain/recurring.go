package domain

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

// RecurringBooking is a "same weekday, same time, every week" template
// that the materializer expands into concrete sessions.
type RecurringBooking struct {
	ID        int64
	CoachID   int64
	MemberID  int64
	RoomID    int64
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WindowOn anchors the template to a calendar date in loc
func (r *RecurringBooking) WindowOn(date time.Time, loc *time.Location) (Window, error) {
	start, err := r.StartTime.OnDate(date, loc)
	if err != nil {
		return Window{}, err
	}
	end, err := r.EndTime.OnDate(date, loc)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}
