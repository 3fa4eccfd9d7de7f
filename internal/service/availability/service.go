package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/availability"
	directoryRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/directory"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
)

// Service сервис управления доступностью тренеров:
// недельные правила, блокировки и дополнительные окна
type Service struct {
	availabilityRepo AvailabilityRepository
	directoryRepo    DirectoryRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	directoryRepo DirectoryRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		directoryRepo:    directoryRepo,
		logger:           logger,
	}
}

// CreateRule создает недельное правило доступности
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: coach=%d, room=%d, day=%d, %s-%s, kind=%s",
		req.CoachID, req.RoomID, req.DayOfWeek, req.StartTime, req.EndTime, req.SessionKind)

	if err := checkAccess(req.Caller, req.CoachID); err != nil {
		s.logger.Warn("CreateRule: access denied for user=%d to coach=%d", req.Caller.UserID, req.CoachID)
		return nil, err
	}

	start, end, err := validateRule(req)
	if err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	kind, capacity, duration, err := normalizePolicy(req.SessionKind, req.Capacity, req.SlotDurationMinutes)
	if err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CoachID, &req.RoomID); err != nil {
		return nil, err
	}

	rule, err := s.availabilityRepo.CreateRule(ctx, &domain.WeeklyAvailabilityRule{
		CoachID:             req.CoachID,
		RoomID:              req.RoomID,
		DayOfWeek:           time.Weekday(req.DayOfWeek),
		StartTime:           start,
		EndTime:             end,
		SessionKind:         kind,
		Capacity:            capacity,
		SlotDurationMinutes: duration,
	})
	if err != nil {
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: created rule id=%d", rule.ID)
	return models.FromDomainRule(rule), nil
}

// DeleteRule удаляет недельное правило
func (s *Service) DeleteRule(ctx context.Context, caller domain.Caller, coachID, ruleID int64) error {
	s.logger.Info("DeleteRule: coach=%d, rule=%d", coachID, ruleID)

	if err := checkAccess(caller, coachID); err != nil {
		return err
	}

	err := s.availabilityRepo.DeleteRule(ctx, coachID, ruleID)
	if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
		return ErrRuleNotFound
	}
	if err != nil {
		s.logger.Error("DeleteRule: repository error: %v", err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListRules возвращает недельные правила тренера
func (s *Service) ListRules(ctx context.Context, coachID int64) ([]*models.RuleResponse, error) {
	if err := s.checkReferences(ctx, coachID, nil); err != nil {
		return nil, err
	}

	rules, err := s.availabilityRepo.ListRulesByCoaches(ctx, []int64{coachID})
	if err != nil {
		s.logger.Error("ListRules: repository error for coach=%d: %v", coachID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.RuleResponse, 0, len(rules))
	for _, r := range rules {
		resp = append(resp, models.FromDomainRule(r))
	}
	return resp, nil
}

// CreateBlock блокирует время тренера
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: coach=%d, %s..%s", req.CoachID,
		req.StartTime.Format(domain.TimestampFormat), req.EndTime.Format(domain.TimestampFormat))

	if err := checkAccess(req.Caller, req.CoachID); err != nil {
		s.logger.Warn("CreateBlock: access denied for user=%d to coach=%d", req.Caller.UserID, req.CoachID)
		return nil, err
	}

	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CoachID, nil); err != nil {
		return nil, err
	}

	block, err := s.availabilityRepo.CreateBlock(ctx, &domain.BlockedSlot{
		CoachID:   req.CoachID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: created block id=%d", block.ID)
	return models.FromDomainBlock(block), nil
}

// DeleteBlock снимает блокировку
func (s *Service) DeleteBlock(ctx context.Context, caller domain.Caller, coachID, blockID int64) error {
	s.logger.Info("DeleteBlock: coach=%d, block=%d", coachID, blockID)

	if err := checkAccess(caller, coachID); err != nil {
		return err
	}

	err := s.availabilityRepo.DeleteBlock(ctx, coachID, blockID)
	if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
		return ErrBlockNotFound
	}
	if err != nil {
		s.logger.Error("DeleteBlock: repository error: %v", err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateAddition добавляет окно доступности вне недельного шаблона
func (s *Service) CreateAddition(ctx context.Context, req *models.CreateAdditionRequest) (*models.AdditionResponse, error) {
	s.logger.Info("CreateAddition: coach=%d, room=%d, %s..%s", req.CoachID, req.RoomID,
		req.StartTime.Format(domain.TimestampFormat), req.EndTime.Format(domain.TimestampFormat))

	if err := checkAccess(req.Caller, req.CoachID); err != nil {
		s.logger.Warn("CreateAddition: access denied for user=%d to coach=%d", req.Caller.UserID, req.CoachID)
		return nil, err
	}

	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	kind, capacity, duration, err := normalizePolicy(req.SessionKind, req.Capacity, req.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CoachID, &req.RoomID); err != nil {
		return nil, err
	}

	addition, err := s.availabilityRepo.CreateAddition(ctx, &domain.AvailabilityAddition{
		CoachID:             req.CoachID,
		RoomID:              req.RoomID,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SessionKind:         kind,
		Capacity:            capacity,
		SlotDurationMinutes: duration,
	})
	if err != nil {
		s.logger.Error("CreateAddition: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAddition - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAddition: created addition id=%d", addition.ID)
	return models.FromDomainAddition(addition), nil
}

// DeleteAddition удаляет дополнительное окно
func (s *Service) DeleteAddition(ctx context.Context, caller domain.Caller, coachID, additionID int64) error {
	s.logger.Info("DeleteAddition: coach=%d, addition=%d", coachID, additionID)

	if err := checkAccess(caller, coachID); err != nil {
		return err
	}

	err := s.availabilityRepo.DeleteAddition(ctx, coachID, additionID)
	if errors.Is(err, availabilityRepo.ErrAdditionNotFound) {
		return ErrAdditionNotFound
	}
	if err != nil {
		s.logger.Error("DeleteAddition: repository error: %v", err)
		return fmt.Errorf("%w: DeleteAddition - repository error: %v", ErrInternal, err)
	}

	return nil
}

// PurgeExpired удаляет исключения, закончившиеся до now
func (s *Service) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.availabilityRepo.PurgeExpired(ctx, now)
	if err != nil {
		s.logger.Error("PurgeExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: PurgeExpired - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PurgeExpired: removed %d expired exceptions", count)
	return count, nil
}

// checkReferences проверяет существование тренера и, если указан, зала
func (s *Service) checkReferences(ctx context.Context, coachID int64, roomID *int64) error {
	if _, err := s.directoryRepo.GetCoach(ctx, coachID); err != nil {
		if errors.Is(err, directoryRepo.ErrCoachNotFound) {
			s.logger.Warn("checkReferences: coach id=%d not found", coachID)
			return ErrCoachNotFound
		}
		return fmt.Errorf("%w: get coach: %v", ErrInternal, err)
	}

	if roomID == nil {
		return nil
	}

	if _, err := s.directoryRepo.GetRoom(ctx, *roomID); err != nil {
		if errors.Is(err, directoryRepo.ErrRoomNotFound) {
			s.logger.Warn("checkReferences: room id=%d not found", *roomID)
			return ErrRoomNotFound
		}
		return fmt.Errorf("%w: get room: %v", ErrInternal, err)
	}

	return nil
}
