package delete_blocked_slot

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

type AvailabilityService interface {
	DeleteBlock(ctx context.Context, caller domain.Caller, coachID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
