package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	directoryRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/directory"
	recurringRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

// Service сервис шаблонов регулярных записей.
// Сессии по шаблону создает материализатор при следующем прогоне.
type Service struct {
	recurringRepo RecurringRepository
	directoryRepo DirectoryRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса
func NewService(recurringRepo RecurringRepository, directoryRepo DirectoryRepository, logger Logger) *Service {
	return &Service{
		recurringRepo: recurringRepo,
		directoryRepo: directoryRepo,
		logger:        logger,
	}
}

// Create создает активный шаблон "тот же день недели, то же время"
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	memberID, err := resolveMember(req)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	s.logger.Info("Create: recurring booking for member=%d, coach=%d, room=%d, day=%d, %s-%s",
		memberID, req.CoachID, req.RoomID, req.DayOfWeek, req.StartTime, req.EndTime)

	start, end, err := validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.directoryRepo.GetCoach(ctx, req.CoachID); err != nil {
		if errors.Is(err, directoryRepo.ErrCoachNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("%w: Create - get coach: %v", ErrInternal, err)
	}

	if _, err := s.directoryRepo.GetRoom(ctx, req.RoomID); err != nil {
		if errors.Is(err, directoryRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: Create - get room: %v", ErrInternal, err)
	}

	created, err := s.recurringRepo.Create(ctx, &domain.RecurringBooking{
		CoachID:   req.CoachID,
		MemberID:  memberID,
		RoomID:    req.RoomID,
		DayOfWeek: time.Weekday(req.DayOfWeek),
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created recurring booking id=%d", created.ID)
	return FromDomain(created), nil
}

// GetByID получает шаблон. Участник видит только свои шаблоны.
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*Response, error) {
	rb, err := s.recurringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, recurringRepo.ErrRecurringBookingNotFound) {
			return nil, ErrRecurringBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	switch {
	case caller.Role == domain.ActorAdmin:
	case caller.Role == domain.ActorCoach && caller.UserID == rb.CoachID:
	case caller.Role == domain.ActorMember && caller.UserID == rb.MemberID:
	default:
		return nil, ErrAccessDenied
	}

	return FromDomain(rb), nil
}

// resolveMember определяет участника: участник создает шаблон только для себя
func resolveMember(req *CreateRequest) (int64, error) {
	switch req.Caller.Role {
	case domain.ActorMember:
		if req.MemberID != 0 && req.MemberID != req.Caller.UserID {
			return 0, fmt.Errorf("%w: member %d cannot book for member %d", ErrAccessDenied, req.Caller.UserID, req.MemberID)
		}
		return req.Caller.UserID, nil
	case domain.ActorCoach, domain.ActorAdmin:
		if req.Caller.Role == domain.ActorCoach && req.Caller.UserID != req.CoachID {
			return 0, fmt.Errorf("%w: coach %d cannot book for coach %d", ErrAccessDenied, req.Caller.UserID, req.CoachID)
		}
		if req.MemberID <= 0 {
			return 0, fmt.Errorf("%w: memberId is required", ErrInvalidInput)
		}
		return req.MemberID, nil
	}
	return 0, ErrAccessDenied
}

// validateCreate проверяет день недели и время шаблона
func validateCreate(req *CreateRequest) (types.TimeString, types.TimeString, error) {
	if req.CoachID <= 0 || req.RoomID <= 0 {
		return "", "", fmt.Errorf("%w: coachId and roomId must be positive", ErrInvalidInput)
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return "", "", fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	return start, end, nil
}
