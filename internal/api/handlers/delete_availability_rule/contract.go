package delete_availability_rule

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

type AvailabilityService interface {
	DeleteRule(ctx context.Context, caller domain.Caller, coachID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
