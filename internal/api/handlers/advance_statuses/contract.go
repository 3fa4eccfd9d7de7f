package advance_statuses

import (
	"context"

	advanceStatuses "github.com/m04kA/SMC-CoachScheduler/internal/usecase/advance_statuses"
)

type AdvanceStatusesUseCase interface {
	Execute(ctx context.Context, req *advanceStatuses.Request) (*advanceStatuses.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
