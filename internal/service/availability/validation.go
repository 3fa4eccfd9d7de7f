package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability/models"
	"github.com/m04kA/SMC-CoachScheduler/pkg/types"
)

// checkAccess тренер управляет только своим расписанием, администратор любым
func checkAccess(caller domain.Caller, coachID int64) error {
	switch caller.Role {
	case domain.ActorAdmin:
		return nil
	case domain.ActorCoach:
		if caller.UserID == coachID {
			return nil
		}
	}
	return ErrAccessDenied
}

// normalizePolicy проверяет вид сессии и заполняет поля по умолчанию.
// Возвращает вид, вместимость и длительность слота.
func normalizePolicy(rawKind string, capacity, duration int) (domain.SessionKind, int, int, error) {
	kind := domain.SessionKind(rawKind)
	if rawKind == "" {
		kind = domain.KindIndividual
	}
	if !kind.IsValid() {
		return "", 0, 0, fmt.Errorf("%w: unknown sessionKind %q", ErrInvalidInput, rawKind)
	}

	if kind == domain.KindGroup {
		if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
			return "", 0, 0, fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
		}
		return kind, capacity, 0, nil
	}

	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	if duration < domain.MinSlotDurationMinutes || duration > domain.MaxSlotDurationMinutes {
		return "", 0, 0, fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	return kind, 1, duration, nil
}

// validateRule проверяет запрос на создание недельного правила
func validateRule(req *models.CreateRuleRequest) (types.TimeString, types.TimeString, error) {
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

// validateWindow проверяет окно исключения
func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	return nil
}

// validateReason проверяет длину причины блокировки
func validateReason(reason *string) error {
	if reason != nil && len(*reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
