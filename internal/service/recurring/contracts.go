package recurring

import (
	"context"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// RecurringRepository интерфейс репозитория шаблонов
type RecurringRepository interface {
	Create(ctx context.Context, rb *domain.RecurringBooking) (*domain.RecurringBooking, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringBooking, error)
}

// DirectoryRepository интерфейс справочника тренеров и залов
type DirectoryRepository interface {
	GetCoach(ctx context.Context, id int64) (*domain.Coach, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
