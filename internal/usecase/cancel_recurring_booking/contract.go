package cancel_recurring_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
)

// RecurringRepository интерфейс репозитория шаблонов
type RecurringRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RecurringBooking, error)
	Deactivate(ctx context.Context, id int64, now time.Time) error
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	CancelFutureByRecurring(ctx context.Context, recurringBookingID int64, after time.Time) ([]int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CancelBySessions(ctx context.Context, sessionIDs []int64, status domain.BookingStatus, reason string, now time.Time) (int64, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishRecurringBookingCancelled(ctx context.Context, event events.RecurringBookingCancelled) error
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
