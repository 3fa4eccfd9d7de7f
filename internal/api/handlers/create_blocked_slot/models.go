package create_blocked_slot

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartTime string  `json:"startTime" validate:"required"`
	EndTime   string  `json:"endTime" validate:"required"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(caller domain.Caller, coachID int64) (*models.CreateBlockRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockRequest{
		Caller:    caller,
		CoachID:   coachID,
		StartTime: start,
		EndTime:   end,
		Reason:    r.Reason,
	}, nil
}
