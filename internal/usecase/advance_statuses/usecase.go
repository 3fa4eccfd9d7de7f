package advance_statuses

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// UseCase переводит закончившиеся сессии в completed и чистит истекшие исключения доступности.
// Операция монотонна и идемпотентна, отмененные сессии не затрагиваются.
type UseCase struct {
	sessionRepo  SessionRepository
	purger       ExceptionPurger
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessionRepo SessionRepository, purger ExceptionPurger, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		purger:       purger,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет перевод статусов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	realNow := uc.timeProvider.Now()
	now := realNow
	if req.Now != nil {
		if req.Now.After(realNow) {
			uc.logger.Warn("AdvanceStatuses: now=%s is in the future", req.Now.Format(domain.TimestampFormat))
			return nil, fmt.Errorf("%w: now must not be in the future", ErrInvalidInput)
		}
		now = *req.Now
	}

	completed, err := uc.sessionRepo.CompleteEnded(ctx, now)
	if err != nil {
		uc.logger.Error("AdvanceStatuses: failed to complete sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to complete sessions: %v", ErrInternal, err)
	}
	uc.metrics.RecordStatusesAdvanced(completed)

	purged, err := uc.purger.PurgeExpired(ctx, now)
	if err != nil {
		uc.logger.Error("AdvanceStatuses: failed to purge exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to purge exceptions: %v", ErrInternal, err)
	}

	uc.logger.Info("AdvanceStatuses: now=%s, completed=%d, purged=%d",
		now.Format(domain.TimestampFormat), completed, purged)

	return &Response{Now: now, Completed: completed, PurgedExceptions: purged}, nil
}
