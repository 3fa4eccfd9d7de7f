package domain

// Default values
const (
	DefaultSlotDurationMinutes = 60
	DefaultHorizonWeeks        = 6
	DefaultGroupCapacity       = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinCapacity            = 1
	MaxCapacity            = 200
	MinHorizonWeeks        = 1
	MaxHorizonWeeks        = 52
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	TimestampFormat = "2006-01-02T15:04:05Z07:00" // RFC3339 with offset
)

// ActiveSessionStatuses statuses that occupy a coach and a room
var ActiveSessionStatuses = []SessionStatus{
	SessionScheduled,
	SessionCompleted,
}
