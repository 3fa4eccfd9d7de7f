package get_coach_sessions

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Период [from, to+1 день) в часовом поясе студии.
func ToServiceRequest(
	caller domain.Caller,
	coachID int64,
	fromStr string,
	toStr string,
	statusStr string,
	loc *time.Location,
) (*models.GetCoachSessionsRequest, error) {
	if fromStr == "" {
		return nil, errors.New("from is required")
	}

	from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
	if err != nil {
		return nil, err
	}

	to := from
	if toStr != "" {
		to, err = time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
	}

	req := &models.GetCoachSessionsRequest{
		Caller:  caller,
		CoachID: coachID,
		From:    from,
		To:      to.AddDate(0, 0, 1),
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
