package create_availability_rule

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
