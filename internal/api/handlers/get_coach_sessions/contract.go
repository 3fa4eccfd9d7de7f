package get_coach_sessions

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

type BookingService interface {
	GetCoachSessions(ctx context.Context, req *models.GetCoachSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
