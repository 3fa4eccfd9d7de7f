package create_availability_rule

import (
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	RoomID              int64  `json:"roomId" validate:"required,gt=0"`
	DayOfWeek           *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime           string `json:"startTime" validate:"required"` // "09:00"
	EndTime             string `json:"endTime" validate:"required"`   // "12:00"
	SessionKind         string `json:"sessionKind" validate:"required,oneof=INDIVIDUAL GROUP"`
	Capacity            int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=200"`
	SlotDurationMinutes int    `json:"slotDurationMinutes,omitempty" validate:"omitempty,min=5,max=480"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRuleRequest) ToServiceRequest(caller domain.Caller, coachID int64) *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		Caller:              caller,
		CoachID:             coachID,
		RoomID:              r.RoomID,
		DayOfWeek:           *r.DayOfWeek,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SessionKind:         r.SessionKind,
		Capacity:            r.Capacity,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
}
