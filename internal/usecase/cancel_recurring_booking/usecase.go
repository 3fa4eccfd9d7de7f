package cancel_recurring_booking

import (
	"context"
	"errors"
	"fmt"

	recurringRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
)

// UseCase use case для отмены регулярной записи.
// Прошедшие и текущие сессии шаблона не затрагиваются.
type UseCase struct {
	recurringRepo RecurringRepository
	sessionRepo   SessionRepository
	bookingRepo   BookingRepository
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	recurringRepo RecurringRepository,
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		recurringRepo: recurringRepo,
		sessionRepo:   sessionRepo,
		bookingRepo:   bookingRepo,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выключает шаблон и отменяет его будущие сессии вместе с записями в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelRecurringBooking: id=%d by %s=%d", req.RecurringBookingID, req.Caller.Role, req.Caller.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelRecurringBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	result := &Response{RecurringBookingID: req.RecurringBookingID}
	var memberID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Шаблон блокируется до конца транзакции
		rb, err := uc.recurringRepo.GetByID(txCtx, req.RecurringBookingID)
		if err != nil {
			if errors.Is(err, recurringRepo.ErrRecurringBookingNotFound) {
				return ErrRecurringBookingNotFound
			}
			return fmt.Errorf("%w: failed to get recurring booking: %w", ErrInternal, err)
		}

		if err := checkAccess(req.Caller, rb); err != nil {
			return err
		}
		memberID = rb.MemberID

		// 2. Новые вхождения больше не генерируются
		if err := uc.recurringRepo.Deactivate(txCtx, rb.ID, now); err != nil {
			if errors.Is(err, recurringRepo.ErrRecurringBookingNotFound) {
				return ErrRecurringBookingNotFound
			}
			return fmt.Errorf("%w: failed to deactivate: %w", ErrInternal, err)
		}

		// 3. Будущие сессии отменяются, сессии с началом <= now остаются
		sessionIDs, err := uc.sessionRepo.CancelFutureByRecurring(txCtx, rb.ID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to cancel sessions: %w", ErrInternal, err)
		}
		result.CancelledSessions = sessionIDs

		// 4. Записи на отмененные сессии получают статус по инициатору
		count, err := uc.bookingRepo.CancelBySessions(txCtx, sessionIDs, req.Caller.Role.CancelStatus(), CancellationReason, now)
		if err != nil {
			return fmt.Errorf("%w: failed to cancel bookings: %w", ErrInternal, err)
		}
		result.CancelledBookings = count

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CancelRecurringBooking: %v", err)
		} else {
			uc.logger.Warn("CancelRecurringBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CancelRecurringBooking: id=%d cancelled, sessions=%d, bookings=%d",
		result.RecurringBookingID, len(result.CancelledSessions), result.CancelledBookings)

	if err := uc.publisher.PublishRecurringBookingCancelled(ctx, events.RecurringBookingCancelled{
		RecurringBookingID: result.RecurringBookingID,
		MemberID:           memberID,
		CancelledSessions:  result.CancelledSessions,
		CancelledBy:        string(req.Caller.Role),
	}); err != nil {
		uc.logger.Warn("CancelRecurringBooking: failed to publish event: %v", err)
	}

	return result, nil
}
