package create_recurring_booking

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/service/recurring"
)

type RecurringService interface {
	Create(ctx context.Context, req *recurring.CreateRequest) (*recurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
