package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/internal/scheduling"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
	"github.com/m04kA/SMC-CoachScheduler/pkg/txmanager"
)

// UseCase use case для записи участника в слот
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	bookingRepo      BookingRepository
	guard            ConflictGuard
	publisher        EventPublisher
	txManager        TransactionManager
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	guard ConflictGuard,
	publisher EventPublisher,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		bookingRepo:      bookingRepo,
		guard:            guard,
		publisher:        publisher,
		txManager:        txManager,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case записи.
// Индивидуальный слот резервируется через ConflictGuard, в групповую сессию участник добавляется
// до заполнения. Сессия и запись создаются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: caller=%d (%s), coach=%d, %s - %s",
		req.Caller.UserID, req.Caller.Role, req.CoachID,
		req.StartTime.Format(domain.TimestampFormat), req.EndTime.Format(domain.TimestampFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	memberID, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно должно совпадать с открытым слотом тренера
	iv, err := uc.findInterval(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *Response

	// 3. Резервирование и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var session *domain.TrainingSession
		var bookedBefore int
		var err error

		if iv.Kind == domain.KindGroup {
			session, bookedBefore, err = uc.joinOrOpenGroup(txCtx, iv, memberID)
		} else {
			session, err = uc.reserve(txCtx, iv, req.Window(), memberID)
		}
		if err != nil {
			return err
		}

		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			SessionID: session.ID,
			MemberID:  memberID,
			Status:    domain.BookingConfirmed,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyBooked) {
				uc.logger.Warn("CreateBooking: member=%d already booked session=%d", memberID, session.ID)
				return ErrAlreadyBooked
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = &Response{
			BookingID:   booking.ID,
			SessionID:   session.ID,
			MemberID:    memberID,
			CoachID:     session.CoachID,
			RoomID:      session.RoomID,
			StartTime:   session.StartTime,
			EndTime:     session.EndTime,
			SessionKind: session.SessionKind,
			Capacity:    session.Capacity,
			BookedCount: bookedBefore + 1,
			Status:      booking.Status,
			CreatedAt:   booking.CreatedAt,
		}
		return nil
	})
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		uc.logger.Warn("CreateBooking: serialization failure after retries: %v", err)
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d on session id=%d", result.BookingID, result.SessionID)

	// 4. Событие публикуется после фиксации транзакции
	if err := uc.publisher.PublishSessionReserved(ctx, events.SessionReserved{
		SessionID:   result.SessionID,
		BookingID:   result.BookingID,
		CoachID:     result.CoachID,
		RoomID:      result.RoomID,
		MemberID:    result.MemberID,
		SessionKind: string(result.SessionKind),
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event: %v", err)
	}

	return result, nil
}

// findInterval находит открытый интервал тренера, которому соответствует окно
func (uc *UseCase) findInterval(ctx context.Context, req *Request) (scheduling.Interval, error) {
	coachIDs := []int64{req.CoachID}
	day := domain.DayBounds(req.StartTime, uc.location)

	rules, err := uc.availabilityRepo.ListRulesByCoaches(ctx, coachIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get rules: %v", err)
		return scheduling.Interval{}, fmt.Errorf("%w: failed to get rules: %w", ErrInternal, err)
	}

	blocks, err := uc.availabilityRepo.ListBlocksInRange(ctx, coachIDs, day)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get blocked slots: %v", err)
		return scheduling.Interval{}, fmt.Errorf("%w: failed to get blocked slots: %w", ErrInternal, err)
	}

	additions, err := uc.availabilityRepo.ListAdditionsInRange(ctx, coachIDs, day)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get additions: %v", err)
		return scheduling.Interval{}, fmt.Errorf("%w: failed to get additions: %w", ErrInternal, err)
	}

	intervals := scheduling.ResolveDay(scheduling.Snapshot{
		CoachID:   req.CoachID,
		Rules:     rules,
		Blocks:    blocks,
		Additions: additions,
	}, day.Start, uc.location)

	iv, ok := scheduling.ContainingInterval(intervals, req.Window())
	if !ok || !matchSlot(iv, req.Window()) {
		uc.logger.Warn("CreateBooking: window is not an open slot of coach=%d", req.CoachID)
		return scheduling.Interval{}, ErrSlotNotAvailable
	}

	if req.RoomID != 0 && req.RoomID != iv.RoomID {
		uc.logger.Warn("CreateBooking: room=%d does not match slot room=%d", req.RoomID, iv.RoomID)
		return scheduling.Interval{}, ErrSlotNotAvailable
	}

	return iv, nil
}

// reserve создает индивидуальную сессию через ConflictGuard
func (uc *UseCase) reserve(ctx context.Context, iv scheduling.Interval, w domain.Window, memberID int64) (*domain.TrainingSession, error) {
	session, err := uc.guard.Reserve(ctx, &conflictguard.ReserveRequest{
		CoachID:  iv.CoachID,
		RoomID:   iv.RoomID,
		Start:    w.Start,
		End:      w.End,
		Kind:     iv.Kind,
		Capacity: 1,
		MemberID: ptr.Ptr(memberID),
	})
	if err != nil {
		return nil, translateGuardError(err)
	}
	return session, nil
}

// joinOrOpenGroup находит групповую сессию ровно на это окно или открывает новую.
// Возвращает сессию и количество подтвержденных записей до текущей.
func (uc *UseCase) joinOrOpenGroup(ctx context.Context, iv scheduling.Interval, memberID int64) (*domain.TrainingSession, int, error) {
	overlapping, err := uc.sessionRepo.FindOverlapping(ctx, iv.CoachID, iv.RoomID, iv.Window, 0)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find sessions: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to find sessions: %w", ErrInternal, err)
	}

	if len(overlapping) == 0 {
		session, err := uc.guard.Reserve(ctx, &conflictguard.ReserveRequest{
			CoachID:  iv.CoachID,
			RoomID:   iv.RoomID,
			Start:    iv.Start,
			End:      iv.End,
			Kind:     domain.KindGroup,
			Capacity: iv.Capacity,
		})
		if err != nil {
			return nil, 0, translateGuardError(err)
		}
		uc.logger.Info("CreateBooking: opened group session id=%d for member=%d", session.ID, memberID)
		return session, 0, nil
	}

	session := overlapping[0]
	if len(overlapping) > 1 || session.SessionKind != domain.KindGroup ||
		session.CoachID != iv.CoachID || session.RoomID != iv.RoomID ||
		!session.Window().Equal(iv.Window) || !session.IsScheduled() {
		uc.logger.Warn("CreateBooking: group window of coach=%d is occupied", iv.CoachID)
		return nil, 0, ErrSlotNotAvailable
	}

	counts, err := uc.bookingRepo.CountConfirmedBySessions(ctx, []int64{session.ID})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count bookings: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
	}

	booked := counts[session.ID]
	if booked >= session.Capacity {
		uc.logger.Warn("CreateBooking: session id=%d is full (%d/%d)", session.ID, booked, session.Capacity)
		return nil, 0, ErrSessionFull
	}

	uc.logger.Info("CreateBooking: member=%d joins session id=%d (%d/%d)", memberID, session.ID, booked, session.Capacity)
	return session, booked, nil
}

func translateGuardError(err error) error {
	switch {
	case errors.Is(err, conflictguard.ErrConflict):
		return ErrSlotNotAvailable
	case errors.Is(err, conflictguard.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, conflictguard.ErrCoachNotFound):
		return ErrCoachNotFound
	case errors.Is(err, conflictguard.ErrRoomNotFound):
		return ErrRoomNotFound
	}
	return fmt.Errorf("%w: reserve: %w", ErrInternal, err)
}
