package domain

import "time"

// SessionStatus represents the lifecycle state of a training session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// TrainingSession is a concrete occupied window of a coach and a room
type TrainingSession struct {
	ID                 int64
	CoachID            int64
	RoomID             int64
	StartTime          time.Time
	EndTime            time.Time
	SessionKind        SessionKind
	Capacity           int
	Status             SessionStatus
	RecurringBookingID *int64 // set when generated from a recurring booking
	MemberID           *int64 // set for direct individual bookings

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the occupied range
func (s *TrainingSession) Window() Window {
	return Window{Start: s.StartTime, End: s.EndTime}
}

// IsActive returns true if the session still occupies its coach and room
func (s *TrainingSession) IsActive() bool {
	return s.Status != SessionCancelled
}

// IsScheduled returns true if the session has not happened or been cancelled yet
func (s *TrainingSession) IsScheduled() bool {
	return s.Status == SessionScheduled
}

// CanTransitionTo enforces forward-only status changes:
// scheduled -> completed, scheduled -> cancelled. Terminal states never change.
func (s *TrainingSession) CanTransitionTo(next SessionStatus) bool {
	if s.Status != SessionScheduled {
		return false
	}
	return next == SessionCompleted || next == SessionCancelled
}

// IsGenerated returns true if the session was materialized from a recurring booking
func (s *TrainingSession) IsGenerated() bool {
	return s.RecurringBookingID != nil
}
