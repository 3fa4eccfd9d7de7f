package materialize_sessions

import (
	"fmt"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// resolveHorizon подставляет горизонт по умолчанию и проверяет границы
func resolveHorizon(req *Request, defaultWeeks int) (int, error) {
	weeks := req.HorizonWeeks
	if weeks == 0 {
		weeks = defaultWeeks
	}

	if weeks < domain.MinHorizonWeeks || weeks > domain.MaxHorizonWeeks {
		return 0, fmt.Errorf("%w: horizonWeeks must be between %d and %d",
			ErrInvalidInput, domain.MinHorizonWeeks, domain.MaxHorizonWeeks)
	}

	return weeks, nil
}
