package conflictguard

import (
	"fmt"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// validateReserve проверяет параметры резервирования
func validateReserve(req *ReserveRequest) error {
	if req.CoachID <= 0 {
		return fmt.Errorf("%w: coachID must be positive", ErrValidation)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrValidation)
	}

	if !req.Window().IsValid() {
		return fmt.Errorf("%w: end must be after start", ErrValidation)
	}

	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown session kind %q", ErrValidation, req.Kind)
	}

	if req.Capacity < domain.MinCapacity || req.Capacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrValidation, domain.MinCapacity, domain.MaxCapacity)
	}

	if req.Kind == domain.KindIndividual && req.Capacity != 1 {
		return fmt.Errorf("%w: individual session capacity must be 1", ErrValidation)
	}

	return nil
}
