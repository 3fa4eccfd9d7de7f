package domain

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

// SessionKind distinguishes one-on-one sessions from group classes
type SessionKind string

const (
	KindIndividual SessionKind = "INDIVIDUAL"
	KindGroup      SessionKind = "GROUP"
)

// IsValid returns true for known kinds
func (k SessionKind) IsValid() bool {
	return k == KindIndividual || k == KindGroup
}

// WeeklyAvailabilityRule is a coach's standing weekly template
type WeeklyAvailabilityRule struct {
	ID                  int64
	CoachID             int64
	RoomID              int64
	DayOfWeek           time.Weekday // 0 = Sunday
	StartTime           types.TimeString
	EndTime             types.TimeString
	SessionKind         SessionKind
	Capacity            int // GROUP only
	SlotDurationMinutes int // INDIVIDUAL only
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WindowOn anchors the rule to a calendar date in loc
func (r *WeeklyAvailabilityRule) WindowOn(date time.Time, loc *time.Location) (Window, error) {
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

// BlockedSlot removes availability inside its window regardless of the template
type BlockedSlot struct {
	ID        int64
	CoachID   int64
	StartTime time.Time
	EndTime   time.Time
	Reason    *string
	CreatedAt time.Time
}

// Window returns the blocked range
func (b *BlockedSlot) Window() Window {
	return Window{Start: b.StartTime, End: b.EndTime}
}

// AvailabilityAddition adds bookable time outside the template
type AvailabilityAddition struct {
	ID                  int64
	CoachID             int64
	RoomID              int64
	StartTime           time.Time
	EndTime             time.Time
	SessionKind         SessionKind
	Capacity            int
	SlotDurationMinutes int
	CreatedAt           time.Time
}

// Window returns the added range
func (a *AvailabilityAddition) Window() Window {
	return Window{Start: a.StartTime, End: a.EndTime}
}

// Coach is read-only reference data
type Coach struct {
	ID   int64
	Name string
}

// Room is read-only reference data
type Room struct {
	ID   int64
	Name string
}
