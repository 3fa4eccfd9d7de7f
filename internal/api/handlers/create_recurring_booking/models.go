package create_recurring_booking

import (
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/recurring"
)

// CreateRecurringBookingRequest HTTP request model
type CreateRecurringBookingRequest struct {
	MemberID  *int64 `json:"memberId,omitempty" validate:"omitempty,gt=0"`
	CoachID   int64  `json:"coachId" validate:"required,gt=0"`
	RoomID    int64  `json:"roomId" validate:"required,gt=0"`
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required"` // "18:00"
	EndTime   string `json:"endTime" validate:"required"`   // "19:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRecurringBookingRequest) ToServiceRequest(caller domain.Caller) *recurring.CreateRequest {
	req := &recurring.CreateRequest{
		Caller:    caller,
		CoachID:   r.CoachID,
		RoomID:    r.RoomID,
		DayOfWeek: *r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
	if r.MemberID != nil {
		req.MemberID = *r.MemberID
	}
	return req
}
