package conflictguard

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	directoryRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/directory"
	sessionRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/session"
	"github.com/m04kA/SMC-CoachScheduler/pkg/txmanager"
)

// Service единственная точка записи занятости тренеров и залов.
// Все проверки и вставки выполняются в сериализуемой транзакции;
// если транзакция уже открыта в ctx, сервис присоединяется к ней.
type Service struct {
	sessionRepo   SessionRepository
	directoryRepo DirectoryRepository
	txManager     TransactionManager
	conflicts     ConflictRecorder
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	sessionRepo SessionRepository,
	directoryRepo DirectoryRepository,
	txManager TransactionManager,
	conflicts ConflictRecorder,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:   sessionRepo,
		directoryRepo: directoryRepo,
		txManager:     txManager,
		conflicts:     conflicts,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Reserve проверяет окно и создает сессию в статусе scheduled.
// Соседние сессии (конец одной равен началу другой) конфликтом не считаются.
func (s *Service) Reserve(ctx context.Context, req *ReserveRequest) (*domain.TrainingSession, error) {
	s.logger.Info("Reserve: coach=%d, room=%d, window=%s..%s, kind=%s",
		req.CoachID, req.RoomID, req.Start.Format(domain.TimestampFormat), req.End.Format(domain.TimestampFormat), req.Kind)

	if err := validateReserve(req); err != nil {
		s.logger.Warn("Reserve: validation failed: %v", err)
		return nil, err
	}

	var result *domain.TrainingSession

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.checkReferences(txCtx, req.CoachID, req.RoomID); err != nil {
			return err
		}

		if err := s.Check(txCtx, req.CoachID, req.RoomID, req.Window(), req.ExcludeSessionID); err != nil {
			return err
		}

		created, err := s.sessionRepo.Create(txCtx, &domain.TrainingSession{
			CoachID:            req.CoachID,
			RoomID:             req.RoomID,
			StartTime:          req.Start,
			EndTime:            req.End,
			SessionKind:        req.Kind,
			Capacity:           req.Capacity,
			Status:             domain.SessionScheduled,
			RecurringBookingID: req.RecurringBookingID,
			MemberID:           req.MemberID,
		})
		if err != nil {
			if errors.Is(err, sessionRepo.ErrDuplicateOccurrence) {
				return ErrDuplicateOccurrence
			}
			s.logger.Error("Reserve: failed to create session: %v", err)
			return fmt.Errorf("%w: Reserve - create session: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, s.translate("Reserve", err)
	}

	s.logger.Info("Reserve: created session id=%d", result.ID)
	return result, nil
}

// Check возвращает ErrConflict, если окно пересекается с неотмененной сессией
// того же тренера или того же зала. Вызывается внутри транзакции вызывающего,
// найденные строки блокируются.
func (s *Service) Check(ctx context.Context, coachID, roomID int64, w domain.Window, excludeID int64) error {
	overlapping, err := s.sessionRepo.FindOverlapping(ctx, coachID, roomID, w, excludeID)
	if err != nil {
		s.logger.Error("Check: failed to find overlapping sessions: %v", err)
		return fmt.Errorf("%w: Check - find overlapping: %w", ErrInternal, err)
	}

	if len(overlapping) > 0 {
		first := overlapping[0]
		s.logger.Warn("Check: window %s..%s overlaps session id=%d (coach=%d, room=%d)",
			w.Start.Format(domain.TimestampFormat), w.End.Format(domain.TimestampFormat), first.ID, first.CoachID, first.RoomID)
		return fmt.Errorf("%w: overlaps session %d", ErrConflict, first.ID)
	}

	return nil
}

// Move переносит запланированную сессию в новое окно с той же проверкой пересечений,
// сама сессия при проверке не учитывается.
func (s *Service) Move(ctx context.Context, sessionID int64, w domain.Window) (*domain.TrainingSession, error) {
	s.logger.Info("Move: session id=%d to %s..%s", sessionID, w.Start.Format(domain.TimestampFormat), w.End.Format(domain.TimestampFormat))

	if !w.IsValid() {
		return nil, fmt.Errorf("%w: end must be after start", ErrValidation)
	}

	var result *domain.TrainingSession

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.sessionRepo.GetByID(txCtx, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("%w: Move - get session: %w", ErrInternal, err)
		}

		if !current.IsScheduled() {
			return fmt.Errorf("%w: status is %s", ErrNotMovable, current.Status)
		}
		// Ключ идемпотентности сгенерированной сессии включает время начала
		if current.IsGenerated() {
			return fmt.Errorf("%w: session belongs to recurring booking %d", ErrNotMovable, *current.RecurringBookingID)
		}

		if err := s.Check(txCtx, current.CoachID, current.RoomID, w, current.ID); err != nil {
			return err
		}

		if err := s.sessionRepo.Move(txCtx, current.ID, w, s.timeProvider.Now()); err != nil {
			if errors.Is(err, sessionRepo.ErrInvalidTransition) {
				return ErrNotMovable
			}
			return fmt.Errorf("%w: Move - update session: %w", ErrInternal, err)
		}

		current.StartTime = w.Start
		current.EndTime = w.End
		result = current
		return nil
	})
	if err != nil {
		return nil, s.translate("Move", err)
	}

	s.logger.Info("Move: session id=%d moved", sessionID)
	return result, nil
}

// checkReferences проверяет существование тренера и зала
func (s *Service) checkReferences(ctx context.Context, coachID, roomID int64) error {
	if _, err := s.directoryRepo.GetCoach(ctx, coachID); err != nil {
		if errors.Is(err, directoryRepo.ErrCoachNotFound) {
			s.logger.Warn("checkReferences: coach id=%d not found", coachID)
			return ErrCoachNotFound
		}
		return fmt.Errorf("%w: get coach: %w", ErrInternal, err)
	}

	if _, err := s.directoryRepo.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, directoryRepo.ErrRoomNotFound) {
			s.logger.Warn("checkReferences: room id=%d not found", roomID)
			return ErrRoomNotFound
		}
		return fmt.Errorf("%w: get room: %w", ErrInternal, err)
	}

	return nil
}

// translate превращает исчерпанные повторы сериализации в конфликт и считает конфликты
func (s *Service) translate(op string, err error) error {
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		s.logger.Warn("%s: serialization failure after retries: %v", op, err)
		err = fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if errors.Is(err, ErrConflict) {
		s.conflicts.RecordConflict()
	}
	return err
}
