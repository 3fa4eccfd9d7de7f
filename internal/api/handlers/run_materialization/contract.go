package run_materialization

import (
	"context"

	materializeSessions "github.com/m04kA/SMC-CoachScheduler/internal/usecase/materialize_sessions"
)

type MaterializeSessionsUseCase interface {
	Execute(ctx context.Context, req *materializeSessions.Request) (*materializeSessions.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
