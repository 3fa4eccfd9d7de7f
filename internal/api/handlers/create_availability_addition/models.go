package create_availability_addition

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

// CreateAdditionRequest HTTP request model
type CreateAdditionRequest struct {
	RoomID              int64  `json:"roomId" validate:"required,gt=0"`
	StartTime           string `json:"startTime" validate:"required"`
	EndTime             string `json:"endTime" validate:"required"`
	SessionKind         string `json:"sessionKind,omitempty" validate:"omitempty,oneof=INDIVIDUAL GROUP"`
	Capacity            int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=200"`
	SlotDurationMinutes int    `json:"slotDurationMinutes,omitempty" validate:"omitempty,min=5,max=480"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAdditionRequest) ToServiceRequest(caller domain.Caller, coachID int64) (*models.CreateAdditionRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateAdditionRequest{
		Caller:              caller,
		CoachID:             coachID,
		RoomID:              r.RoomID,
		StartTime:           start,
		EndTime:             end,
		SessionKind:         r.SessionKind,
		Capacity:            r.Capacity,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}, nil
}
