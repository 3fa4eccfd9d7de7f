package advance_statuses

import (
	"context"
	"time"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	CompleteEnded(ctx context.Context, now time.Time) (int64, error)
}

// ExceptionPurger удаление истекших блокировок и добавлений
type ExceptionPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// MetricsRecorder счетчик завершенных сессий
type MetricsRecorder interface {
	RecordStatusesAdvanced(count int64)
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
