package events

import "time"

// Типы событий, они же суффиксы subject
const (
	TypeSessionReserved           = "session.reserved"
	TypeSessionCancelled          = "session.cancelled"
	TypeSessionsMaterialized      = "sessions.materialized"
	TypeRecurringBookingCancelled = "recurring_booking.cancelled"
)

// SessionReserved публикуется после создания сессии или записи в групповую сессию
type SessionReserved struct {
	EventType   string    `json:"eventType"`
	SessionID   int64     `json:"sessionId"`
	BookingID   int64     `json:"bookingId"`
	CoachID     int64     `json:"coachId"`
	RoomID      int64     `json:"roomId"`
	MemberID    int64     `json:"memberId"`
	SessionKind string    `json:"sessionKind"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// SessionCancelled публикуется после отмены сессии
type SessionCancelled struct {
	EventType   string    `json:"eventType"`
	SessionID   int64     `json:"sessionId"`
	CoachID     int64     `json:"coachId"`
	MemberIDs   []int64   `json:"memberIds"`
	CancelledBy string    `json:"cancelledBy"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// SessionsMaterialized итоги прогона материализации
type SessionsMaterialized struct {
	EventType       string    `json:"eventType"`
	RunID           string    `json:"runId"`
	WeeksGenerated  int       `json:"weeksGenerated"`
	SessionsCreated int       `json:"sessionsCreated"`
	Skipped         int       `json:"skipped"`
	Gaps            int       `json:"gaps"`
	Errors          int       `json:"errors"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// RecurringBookingCancelled публикуется после отмены шаблона
type RecurringBookingCancelled struct {
	EventType          string    `json:"eventType"`
	RecurringBookingID int64     `json:"recurringBookingId"`
	MemberID           int64     `json:"memberId"`
	CancelledSessions  []int64   `json:"cancelledSessions"`
	CancelledBy        string    `json:"cancelledBy"`
	OccurredAt         time.Time `json:"occurredAt"`
}
