package cancel_booking

import (
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(caller domain.Caller) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		Caller:             caller,
		CancellationReason: reason,
	}
}
