package reschedule_session

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleRequest) ToServiceRequest(caller domain.Caller, sessionID int64) (*models.RescheduleRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleRequest{
		Caller:    caller,
		SessionID: sessionID,
		StartTime: start,
		EndTime:   end,
	}, nil
}
