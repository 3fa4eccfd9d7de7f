package domain

import "time"

// AvailableSlot represents a bookable unit offered to members
type AvailableSlot struct {
	CoachID     int64
	CoachName   string
	RoomID      int64
	StartTime   time.Time
	EndTime     time.Time
	SessionKind SessionKind
	Capacity    int // GROUP only
	BookedCount int // GROUP only
	SessionID   *int64
}

// Window returns the slot range
func (s *AvailableSlot) Window() Window {
	return Window{Start: s.StartTime, End: s.EndTime}
}

// IsFull returns true if a group slot has no seats left
func (s *AvailableSlot) IsFull() bool {
	return s.SessionKind == KindGroup && s.BookedCount >= s.Capacity
}

// AvailableSpots returns the number of free seats (1 or 0 for individual slots)
func (s *AvailableSlot) AvailableSpots() int {
	if s.SessionKind != KindGroup {
		return 1
	}
	free := s.Capacity - s.BookedCount
	if free < 0 {
		return 0
	}
	return free
}
