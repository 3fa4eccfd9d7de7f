package cancel_recurring_booking

import (
	"context"

	cancelRecurring "github.com/m04kA/SMC-CoachScheduler/internal/usecase/cancel_recurring_booking"
)

type CancelRecurringBookingUseCase interface {
	Execute(ctx context.Context, req *cancelRecurring.Request) (*cancelRecurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
