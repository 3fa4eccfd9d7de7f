package get_recurring_booking

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/recurring"
)

type RecurringService interface {
	GetByID(ctx context.Context, id int64, caller domain.Caller) (*recurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
