package recurring

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// CreateRequest запрос на создание регулярной записи
type CreateRequest struct {
	Caller    domain.Caller
	MemberID  int64 // 0 = сам вызывающий
	CoachID   int64
	RoomID    int64
	DayOfWeek int    // 0 = воскресенье
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// Response шаблон регулярной записи
type Response struct {
	ID        int64     `json:"id"`
	CoachID   int64     `json:"coachId"`
	MemberID  int64     `json:"memberId"`
	RoomID    int64     `json:"roomId"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomain конвертирует шаблон в DTO
func FromDomain(rb *domain.RecurringBooking) *Response {
	return &Response{
		ID:        rb.ID,
		CoachID:   rb.CoachID,
		MemberID:  rb.MemberID,
		RoomID:    rb.RoomID,
		DayOfWeek: int(rb.DayOfWeek),
		StartTime: rb.StartTime.String(),
		EndTime:   rb.EndTime.String(),
		Active:    rb.Active,
		CreatedAt: rb.CreatedAt,
	}
}
