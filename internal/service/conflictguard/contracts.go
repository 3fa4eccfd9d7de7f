package conflictguard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.TrainingSession) (*domain.TrainingSession, error)
	GetByID(ctx context.Context, id int64) (*domain.TrainingSession, error)
	FindOverlapping(ctx context.Context, coachID, roomID int64, w domain.Window, excludeID int64) ([]*domain.TrainingSession, error)
	Move(ctx context.Context, id int64, w domain.Window, now time.Time) error
}

// DirectoryRepository интерфейс справочника тренеров и залов
type DirectoryRepository interface {
	GetCoach(ctx context.Context, id int64) (*domain.Coach, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConflictRecorder счетчик отказов из-за пересечений
type ConflictRecorder interface {
	RecordConflict()
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
