package reschedule_session

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

type BookingService interface {
	Reschedule(ctx context.Context, req *models.RescheduleRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
