package delete_availability_addition

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

type AvailabilityService interface {
	DeleteAddition(ctx context.Context, caller domain.Caller, coachID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
