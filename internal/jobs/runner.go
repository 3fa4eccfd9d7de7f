package jobs

import (
	"context"
	"sync/atomic"
	"time"

	advanceStatuses "github.com/m04kA/SMC-CoachScheduler/internal/usecase/advance_statuses"
	materializeSessions "github.com/m04kA/SMC-CoachScheduler/internal/usecase/materialize_sessions"
)

// Materializer генерация сессий по регулярным записям
type Materializer interface {
	Execute(ctx context.Context, req *materializeSessions.Request) (*materializeSessions.Report, error)
}

// StatusAdvancer перевод прошедших сессий в completed
type StatusAdvancer interface {
	Execute(ctx context.Context, req *advanceStatuses.Request) (*advanceStatuses.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Runner периодически запускает материализацию и перевод статусов.
// Прогоны не пересекаются: тик во время текущего прогона пропускается.
type Runner struct {
	materializer Materializer
	advancer     StatusAdvancer
	interval     time.Duration
	logger       Logger

	running atomic.Bool
}

// NewRunner создает новый экземпляр планировщика
func NewRunner(materializer Materializer, advancer StatusAdvancer, interval time.Duration, logger Logger) *Runner {
	return &Runner{
		materializer: materializer,
		advancer:     advancer,
		interval:     interval,
		logger:       logger,
	}
}

// Run выполняет первый прогон сразу, затем по тикеру до отмены контекста
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("Jobs runner started, interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Jobs runner stopped")
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick выполняет один прогон: материализация, затем перевод статусов.
// Возвращает false, если предыдущий прогон еще не завершен.
func (r *Runner) Tick(ctx context.Context) bool {
	if !r.running.CompareAndSwap(false, true) {
		r.logger.Warn("Jobs runner: previous run still in progress, tick skipped")
		return false
	}
	defer r.running.Store(false)

	report, err := r.materializer.Execute(ctx, &materializeSessions.Request{})
	if err != nil {
		r.logger.Error("Jobs runner: materialization failed: %v", err)
	} else {
		r.logger.Info("Jobs runner: materialization run_id=%s, created=%d, skipped=%d, gaps=%d, errors=%d",
			report.RunID, report.SessionsCreated, report.Skipped, len(report.Gaps), len(report.Errors))
	}

	// Перевод статусов не зависит от результата материализации
	result, err := r.advancer.Execute(ctx, &advanceStatuses.Request{})
	if err != nil {
		r.logger.Error("Jobs runner: advance statuses failed: %v", err)
		return true
	}

	r.logger.Info("Jobs runner: completed=%d, purged=%d", result.Completed, result.PurgedExceptions)
	return true
}
