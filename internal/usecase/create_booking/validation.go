package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/scheduling"
)

// validateRequest валидирует входные данные и определяет участника
func validateRequest(req *Request, now time.Time) (int64, error) {
	if req.CoachID <= 0 {
		return 0, fmt.Errorf("%w: coachId must be positive", ErrInvalidInput)
	}

	if req.RoomID < 0 {
		return 0, fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return 0, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.Window().IsValid() {
		return 0, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if !req.StartTime.After(now) {
		return 0, fmt.Errorf("%w: slot is in the past", ErrInvalidInput)
	}

	return resolveMember(req)
}

// resolveMember участник записывает только себя, тренер и администратор указывают участника
func resolveMember(req *Request) (int64, error) {
	switch req.Caller.Role {
	case domain.ActorMember:
		if req.MemberID != 0 && req.MemberID != req.Caller.UserID {
			return 0, ErrAccessDenied
		}
		return req.Caller.UserID, nil
	case domain.ActorCoach:
		if req.Caller.UserID != req.CoachID {
			return 0, ErrAccessDenied
		}
	case domain.ActorAdmin:
	default:
		return 0, ErrAccessDenied
	}

	if req.MemberID <= 0 {
		return 0, fmt.Errorf("%w: memberId is required", ErrInvalidInput)
	}
	return req.MemberID, nil
}

// matchSlot проверяет, что окно совпадает с предлагаемым слотом открытого интервала.
// Индивидуальный слот выровнен по сетке интервала, групповой занимает интервал целиком.
func matchSlot(iv scheduling.Interval, w domain.Window) bool {
	if iv.Kind == domain.KindGroup {
		return iv.Window.Equal(w)
	}

	duration := time.Duration(iv.SlotDurationMinutes) * time.Minute
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes * time.Minute
	}

	if w.Duration() != duration {
		return false
	}

	return w.Start.Sub(iv.Start)%duration == 0
}
