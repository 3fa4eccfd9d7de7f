package advance_statuses

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	advanceStatuses "github.com/m04kA/SMC-CoachScheduler/internal/usecase/advance_statuses"
)

// AdvanceRequest HTTP request model. Без now используется текущее время.
type AdvanceRequest struct {
	Now *string `json:"now,omitempty"`
}

// AdvanceResponse HTTP response model
type AdvanceResponse struct {
	Now              string `json:"now"`
	Completed        int64  `json:"completed"`
	PurgedExceptions int64  `json:"purgedExceptions"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdvanceRequest) ToUseCaseRequest() (*advanceStatuses.Request, error) {
	if r.Now == nil {
		return &advanceStatuses.Request{}, nil
	}

	now, err := time.Parse(time.RFC3339, *r.Now)
	if err != nil {
		return nil, err
	}
	return &advanceStatuses.Request{Now: &now}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *advanceStatuses.Response) *AdvanceResponse {
	return &AdvanceResponse{
		Now:              resp.Now.Format(domain.TimestampFormat),
		Completed:        resp.Completed,
		PurgedExceptions: resp.PurgedExceptions,
	}
}
