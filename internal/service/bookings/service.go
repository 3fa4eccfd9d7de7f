package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/booking"
	sessionRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/session"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями и сессиями
type Service struct {
	bookingRepo  BookingRepository
	sessionRepo  SessionRepository
	mover        SessionMover
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	mover SessionMover,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		mover:        mover,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование вместе с сессией.
// Участник видит только свои записи, тренер - записи на свои сессии, администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d (%s)", id, caller.UserID, caller.Role)

	var resp *models.BookingResponse

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, session, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if err := checkBookingAccess(booking, session, caller); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", caller.UserID, id)
			return err
		}

		counts, err := s.bookingRepo.CountConfirmedBySessions(txCtx, []int64{session.ID})
		if err != nil {
			return fmt.Errorf("%w: GetByID - count bookings: %w", ErrInternal, err)
		}

		resp = models.FromDomainBooking(booking)
		resp.Session = models.FromDomainSession(session, counts[session.ID])
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetMemberBookings получает историю записей участника.
// Опционально фильтрует по статусу.
func (s *Service) GetMemberBookings(ctx context.Context, req *models.GetMemberBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMemberBookings: fetching bookings for member=%d, status=%v", req.MemberID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMemberBookings: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByMemberID(ctx, req.MemberID, domainStatus)
	if err != nil {
		s.logger.Error("GetMemberBookings: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetMemberBookings: successfully fetched %d bookings for member=%d", len(bookings), req.MemberID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCoachSessions получает сессии тренера за период с количеством записей.
// Доступно самому тренеру и администратору.
func (s *Service) GetCoachSessions(ctx context.Context, req *models.GetCoachSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetCoachSessions: coach=%d, period=%s to %s, status=%v",
		req.CoachID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Status)

	if !isCoachOrAdmin(req.Caller, req.CoachID) {
		s.logger.Warn("GetCoachSessions: access denied for user=%d to coach=%d", req.Caller.UserID, req.CoachID)
		return nil, ErrAccessDenied
	}

	w := domain.Window{Start: req.From, End: req.To}
	if !w.IsValid() {
		return nil, fmt.Errorf("%w: period end must be after start", ErrInvalidInput)
	}

	var domainStatus *domain.SessionStatus
	if req.Status != nil {
		status, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	sessions, err := s.sessionRepo.ListByCoach(ctx, req.CoachID, w, domainStatus)
	if err != nil {
		s.logger.Error("GetCoachSessions: repository error for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: GetCoachSessions - repository error: %w", ErrInternal, err)
	}

	ids := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}

	counts, err := s.bookingRepo.CountConfirmedBySessions(ctx, ids)
	if err != nil {
		s.logger.Error("GetCoachSessions: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: GetCoachSessions - count bookings: %w", ErrInternal, err)
	}

	resp := &models.SessionListResponse{Sessions: make([]models.SessionResponse, 0, len(sessions))}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, *models.FromDomainSession(session, counts[session.ID]))
	}

	s.logger.Info("GetCoachSessions: fetched %d sessions for coach=%d", len(sessions), req.CoachID)
	return resp, nil
}

// Cancel отменяет бронирование.
// Участник отменяет свою запись (CANCELLED_BY_MEMBER), тренер сессии или администратор
// любую запись на нее (CANCELLED_BY_COACH). Отмена последней записи индивидуальной сессии
// отменяет и саму сессию, освобождая окно тренера и зала.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d (%s)", bookingID, req.Caller.UserID, req.Caller.Role)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	now := s.timeProvider.Now()
	var cancelledSession *domain.TrainingSession
	var memberID int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, session, err := s.loadBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		if err := checkBookingAccess(booking, session, req.Caller); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.Caller.UserID, bookingID)
			return err
		}

		if !booking.CanBeCancelled() || !session.IsScheduled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s, session status=%s",
				bookingID, booking.Status, session.Status)
			return ErrCannotCancel
		}

		status := req.Caller.Role.CancelStatus()
		if err := s.bookingRepo.Cancel(txCtx, bookingID, status, req.CancellationReason, now); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if session.SessionKind != domain.KindIndividual {
			return nil
		}

		counts, err := s.bookingRepo.CountConfirmedBySessions(txCtx, []int64{session.ID})
		if err != nil {
			return fmt.Errorf("%w: Cancel - count bookings: %w", ErrInternal, err)
		}
		if counts[session.ID] > 0 {
			return nil
		}

		if err := s.sessionRepo.Cancel(txCtx, session.ID, now); err != nil {
			return fmt.Errorf("%w: Cancel - cancel session: %w", ErrInternal, err)
		}
		cancelledSession = session
		memberID = booking.MemberID

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: booking id=%d cancelled", bookingID)

	if cancelledSession != nil {
		s.logger.Info("Cancel: individual session id=%d cancelled with its last booking", cancelledSession.ID)
		s.publishCancelled(ctx, cancelledSession, memberID, req.Caller.Role)
	}

	return nil
}

// Reschedule переносит сессию в новое окно. Доступно тренеру сессии и администратору.
func (s *Service) Reschedule(ctx context.Context, req *models.RescheduleRequest) (*models.SessionResponse, error) {
	s.logger.Info("Reschedule: session id=%d by user=%d (%s)", req.SessionID, req.Caller.UserID, req.Caller.Role)

	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: Reschedule - get session: %w", ErrInternal, err)
	}

	if !isCoachOrAdmin(req.Caller, session.CoachID) {
		s.logger.Warn("Reschedule: access denied for user=%d to session id=%d", req.Caller.UserID, req.SessionID)
		return nil, ErrAccessDenied
	}

	moved, err := s.mover.Move(ctx, req.SessionID, domain.Window{Start: req.StartTime, End: req.EndTime})
	if err != nil {
		s.logger.Warn("Reschedule: move failed for session id=%d: %v", req.SessionID, err)
		return nil, err
	}

	counts, err := s.bookingRepo.CountConfirmedBySessions(ctx, []int64{moved.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: Reschedule - count bookings: %w", ErrInternal, err)
	}

	s.logger.Info("Reschedule: session id=%d moved to %s", moved.ID, moved.StartTime.Format(domain.TimestampFormat))
	return models.FromDomainSession(moved, counts[moved.ID]), nil
}

// loadBooking загружает бронирование и его сессию
func (s *Service) loadBooking(ctx context.Context, bookingID int64) (*domain.Booking, *domain.TrainingSession, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("loadBooking: booking id=%d not found", bookingID)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("loadBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, nil, fmt.Errorf("%w: get booking: %w", ErrInternal, err)
	}

	session, err := s.sessionRepo.GetByID(ctx, booking.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("%w: get session: %w", ErrInternal, err)
	}

	return booking, session, nil
}

func (s *Service) publishCancelled(ctx context.Context, session *domain.TrainingSession, memberID int64, by domain.Actor) {
	event := events.SessionCancelled{
		SessionID:   session.ID,
		CoachID:     session.CoachID,
		MemberIDs:   []int64{memberID},
		CancelledBy: string(by),
	}

	if err := s.publisher.PublishSessionCancelled(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to publish session.cancelled for session id=%d: %v", session.ID, err)
	}
}

// checkBookingAccess проверяет права на просмотр и отмену записи
func checkBookingAccess(booking *domain.Booking, session *domain.TrainingSession, caller domain.Caller) error {
	switch caller.Role {
	case domain.ActorAdmin:
		return nil
	case domain.ActorCoach:
		if session.CoachID == caller.UserID {
			return nil
		}
	case domain.ActorMember:
		if booking.MemberID == caller.UserID {
			return nil
		}
	}
	return ErrAccessDenied
}

func isCoachOrAdmin(caller domain.Caller, coachID int64) bool {
	return caller.Role == domain.ActorAdmin || (caller.Role == domain.ActorCoach && caller.UserID == coachID)
}
