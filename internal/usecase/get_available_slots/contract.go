package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил и исключений доступности
type AvailabilityRepository interface {
	ListRulesByCoaches(ctx context.Context, coachIDs []int64) ([]*domain.WeeklyAvailabilityRule, error)
	ListBlocksInRange(ctx context.Context, coachIDs []int64, w domain.Window) ([]*domain.BlockedSlot, error)
	ListAdditionsInRange(ctx context.Context, coachIDs []int64, w domain.Window) ([]*domain.AvailabilityAddition, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// ListActiveInRange возвращает неотмененные сессии тренеров или залов в окне
	ListActiveInRange(ctx context.Context, coachIDs, roomIDs []int64, w domain.Window) ([]*domain.TrainingSession, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountConfirmedBySessions(ctx context.Context, sessionIDs []int64) (map[int64]int, error)
}

// DirectoryRepository интерфейс справочника тренеров
type DirectoryRepository interface {
	GetCoachesByIDs(ctx context.Context, ids []int64) ([]*domain.Coach, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
