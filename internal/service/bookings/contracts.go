package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByMemberID(ctx context.Context, memberID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	CountConfirmedBySessions(ctx context.Context, sessionIDs []int64) (map[int64]int, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string, now time.Time) error
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TrainingSession, error)
	ListByCoach(ctx context.Context, coachID int64, w domain.Window, status *domain.SessionStatus) ([]*domain.TrainingSession, error)
	Cancel(ctx context.Context, id int64, now time.Time) error
}

// SessionMover перенос сессии с проверкой пересечений
type SessionMover interface {
	Move(ctx context.Context, sessionID int64, w domain.Window) (*domain.TrainingSession, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishSessionCancelled(ctx context.Context, event events.SessionCancelled) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
