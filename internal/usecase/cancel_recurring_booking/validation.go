package cancel_recurring_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RecurringBookingID <= 0 {
		return fmt.Errorf("%w: recurringBookingId must be positive", ErrInvalidInput)
	}

	if !req.Caller.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrAccessDenied, req.Caller.Role)
	}

	return nil
}

// checkAccess шаблон отменяет его участник, его тренер или администратор
func checkAccess(caller domain.Caller, rb *domain.RecurringBooking) error {
	switch {
	case caller.Role == domain.ActorAdmin:
		return nil
	case caller.Role == domain.ActorCoach && caller.UserID == rb.CoachID:
		return nil
	case caller.Role == domain.ActorMember && caller.UserID == rb.MemberID:
		return nil
	}
	return ErrAccessDenied
}
