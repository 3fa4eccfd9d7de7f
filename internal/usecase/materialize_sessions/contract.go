package materialize_sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
)

// RecurringRepository интерфейс репозитория шаблонов
type RecurringRepository interface {
	ListActive(ctx context.Context) ([]*domain.RecurringBooking, error)
}

// AvailabilityRepository интерфейс репозитория правил и исключений доступности
type AvailabilityRepository interface {
	ListRulesByCoaches(ctx context.Context, coachIDs []int64) ([]*domain.WeeklyAvailabilityRule, error)
	ListBlocksInRange(ctx context.Context, coachIDs []int64, w domain.Window) ([]*domain.BlockedSlot, error)
	ListAdditionsInRange(ctx context.Context, coachIDs []int64, w domain.Window) ([]*domain.AvailabilityAddition, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ExistsByRecurringAndStart(ctx context.Context, recurringBookingID int64, start time.Time) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ConflictGuard резервирование окна без пересечений
type ConflictGuard interface {
	Reserve(ctx context.Context, req *conflictguard.ReserveRequest) (*domain.TrainingSession, error)
}

// MetricsRecorder счетчики прогона
type MetricsRecorder interface {
	RecordMaterialization(created int, gapsByReason map[string]int, failed int)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishSessionsMaterialized(ctx context.Context, event events.SessionsMaterialized) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
