package domain

import "time"

// BookingStatus represents the status of a member's seat in a session
type BookingStatus string

const (
	BookingConfirmed         BookingStatus = "CONFIRMED"
	BookingCancelledByMember BookingStatus = "CANCELLED_BY_MEMBER"
	BookingCancelledByCoach  BookingStatus = "CANCELLED_BY_COACH"
)

// Actor who initiates a cancellation
type Actor string

const (
	ActorMember Actor = "member"
	ActorCoach  Actor = "coach"
	ActorAdmin  Actor = "admin"
)

// CancelStatus maps the actor to the resulting booking status.
// Admins cancel on behalf of the studio, same as a coach.
func (a Actor) CancelStatus() BookingStatus {
	if a == ActorMember {
		return BookingCancelledByMember
	}
	return BookingCancelledByCoach
}

// Caller identifies who performs an operation, as asserted by the gateway
type Caller struct {
	UserID int64
	Role   Actor
}

// IsValid returns true for known roles
func (a Actor) IsValid() bool {
	return a == ActorMember || a == ActorCoach || a == ActorAdmin
}

// Booking is one member's seat in a training session
type Booking struct {
	ID        int64
	SessionID int64
	MemberID  int64
	Status    BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds a seat
func (b *Booking) IsActive() bool {
	return b.Status == BookingConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelledByMember || b.Status == BookingCancelledByCoach
}
