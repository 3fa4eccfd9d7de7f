package materialize_sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/internal/scheduling"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

// UseCase разворачивает активные шаблоны в конкретные сессии на скользящем горизонте.
// Повторный запуск безопасен: уже созданные вхождения пропускаются, а уникальный индекс
// (recurring_booking_id, start_time) защищает от параллельных прогонов.
type UseCase struct {
	recurringRepo    RecurringRepository
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	bookingRepo      BookingRepository
	guard            ConflictGuard
	metrics          MetricsRecorder
	publisher        EventPublisher
	txManager        TransactionManager
	location         *time.Location
	defaultHorizon   int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	recurringRepo RecurringRepository,
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	guard ConflictGuard,
	metrics MetricsRecorder,
	publisher EventPublisher,
	txManager TransactionManager,
	location *time.Location,
	defaultHorizon int,
	logger Logger,
) *UseCase {
	if defaultHorizon <= 0 {
		defaultHorizon = domain.DefaultHorizonWeeks
	}

	return &UseCase{
		recurringRepo:    recurringRepo,
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		bookingRepo:      bookingRepo,
		guard:            guard,
		metrics:          metrics,
		publisher:        publisher,
		txManager:        txManager,
		location:         location,
		defaultHorizon:   defaultHorizon,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет прогон материализации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Report, error) {
	weeks, err := resolveHorizon(req, uc.defaultHorizon)
	if err != nil {
		uc.logger.Warn("MaterializeSessions: validation failed: %v", err)
		return nil, err
	}

	report := &Report{
		RunID:          uuid.NewString(),
		WeeksGenerated: weeks,
		Gaps:           []Gap{},
		Errors:         []RunError{},
	}

	uc.logger.Info("MaterializeSessions: run=%s, horizon=%d weeks", report.RunID, weeks)

	templates, err := uc.recurringRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("MaterializeSessions: failed to list recurring bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list recurring bookings: %w", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	for _, rb := range templates {
		if err := uc.materialize(ctx, rb, weeks, now, report); err != nil {
			uc.logger.Error("MaterializeSessions: recurring booking id=%d: %v", rb.ID, err)
			report.Errors = append(report.Errors, RunError{RecurringBookingID: rb.ID, Message: err.Error()})
		}
	}

	uc.metrics.RecordMaterialization(report.SessionsCreated, report.gapsByReason(), len(report.Errors))

	uc.logger.Info("MaterializeSessions: run=%s done: created=%d, skipped=%d, gaps=%d, errors=%d",
		report.RunID, report.SessionsCreated, report.Skipped, len(report.Gaps), len(report.Errors))

	if err := uc.publisher.PublishSessionsMaterialized(ctx, events.SessionsMaterialized{
		RunID:           report.RunID,
		WeeksGenerated:  report.WeeksGenerated,
		SessionsCreated: report.SessionsCreated,
		Skipped:         report.Skipped,
		Gaps:            len(report.Gaps),
		Errors:          len(report.Errors),
	}); err != nil {
		uc.logger.Warn("MaterializeSessions: failed to publish event: %v", err)
	}

	return report, nil
}

// materialize обрабатывает один шаблон. Ошибка означает, что оставшиеся вхождения шаблона не обработаны.
func (uc *UseCase) materialize(ctx context.Context, rb *domain.RecurringBooking, weeks int, now time.Time, report *Report) error {
	occurrences, err := scheduling.WeeklyOccurrences(rb, rb.DayOfWeek, now, weeks, uc.location)
	if err != nil {
		return err
	}
	if len(occurrences) == 0 {
		return nil
	}

	snap, err := uc.loadSnapshot(ctx, rb.CoachID, domain.Window{
		Start: domain.DayBounds(occurrences[0].Start, uc.location).Start,
		End:   domain.DayBounds(occurrences[len(occurrences)-1].Start, uc.location).End,
	})
	if err != nil {
		return err
	}

	for _, w := range occurrences {
		// 1. Вхождение уже материализовано
		exists, err := uc.sessionRepo.ExistsByRecurringAndStart(ctx, rb.ID, w.Start)
		if err != nil {
			return fmt.Errorf("check occurrence %s: %w", w.Start.Format(domain.TimestampFormat), err)
		}
		if exists {
			report.Skipped++
			continue
		}

		// 2. Окно должно целиком лежать в одном открытом интервале
		intervals := scheduling.ResolveDay(snap, w.Start, uc.location)
		if _, ok := scheduling.ContainingInterval(intervals, w); !ok {
			report.Gaps = append(report.Gaps, Gap{RecurringBookingID: rb.ID, StartTime: w.Start, EndTime: w.End, Reason: GapUnavailable})
			continue
		}

		// 3. Сессия и запись в одной сериализуемой транзакции
		err = uc.reserve(ctx, rb, w)
		switch {
		case err == nil:
			report.SessionsCreated++
		case errors.Is(err, conflictguard.ErrConflict):
			report.Gaps = append(report.Gaps, Gap{RecurringBookingID: rb.ID, StartTime: w.Start, EndTime: w.End, Reason: GapConflict})
		case errors.Is(err, conflictguard.ErrDuplicateOccurrence):
			report.Skipped++
		default:
			return fmt.Errorf("reserve %s: %w", w.Start.Format(domain.TimestampFormat), err)
		}
	}

	return nil
}

func (uc *UseCase) reserve(ctx context.Context, rb *domain.RecurringBooking, w domain.Window) error {
	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Параллельный прогон мог зафиксировать вхождение до повтора транзакции
		exists, err := uc.sessionRepo.ExistsByRecurringAndStart(txCtx, rb.ID, w.Start)
		if err != nil {
			return err
		}
		if exists {
			return conflictguard.ErrDuplicateOccurrence
		}

		session, err := uc.guard.Reserve(txCtx, &conflictguard.ReserveRequest{
			CoachID:            rb.CoachID,
			RoomID:             rb.RoomID,
			Start:              w.Start,
			End:                w.End,
			Kind:               domain.KindIndividual,
			Capacity:           1,
			RecurringBookingID: ptr.Ptr(rb.ID),
			MemberID:           ptr.Ptr(rb.MemberID),
		})
		if err != nil {
			return err
		}

		_, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			SessionID: session.ID,
			MemberID:  rb.MemberID,
			Status:    domain.BookingConfirmed,
		})
		return err
	})
}

// loadSnapshot загружает правила и исключения тренера на окно горизонта
func (uc *UseCase) loadSnapshot(ctx context.Context, coachID int64, w domain.Window) (scheduling.Snapshot, error) {
	coachIDs := []int64{coachID}

	rules, err := uc.availabilityRepo.ListRulesByCoaches(ctx, coachIDs)
	if err != nil {
		return scheduling.Snapshot{}, fmt.Errorf("load rules: %w", err)
	}

	blocks, err := uc.availabilityRepo.ListBlocksInRange(ctx, coachIDs, w)
	if err != nil {
		return scheduling.Snapshot{}, fmt.Errorf("load blocked slots: %w", err)
	}

	additions, err := uc.availabilityRepo.ListAdditionsInRange(ctx, coachIDs, w)
	if err != nil {
		return scheduling.Snapshot{}, fmt.Errorf("load additions: %w", err)
	}

	return scheduling.Snapshot{
		CoachID:   coachID,
		Rules:     rules,
		Blocks:    blocks,
		Additions: additions,
	}, nil
}
