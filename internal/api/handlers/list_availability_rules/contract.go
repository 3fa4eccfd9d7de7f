package list_availability_rules

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	ListRules(ctx context.Context, coachID int64) ([]*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
