package create_availability_addition

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateAddition(ctx context.Context, req *models.CreateAdditionRequest) (*models.AdditionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
