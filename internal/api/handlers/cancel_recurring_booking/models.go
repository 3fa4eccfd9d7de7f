package cancel_recurring_booking

import (
	cancelRecurring "github.com/m04kA/SMC-CoachScheduler/internal/usecase/cancel_recurring_booking"
)

// CancelRecurringBookingResponse HTTP response model
type CancelRecurringBookingResponse struct {
	RecurringBookingID int64   `json:"recurringBookingId"`
	CancelledSessions  []int64 `json:"cancelledSessions"`
	CancelledBookings  int64   `json:"cancelledBookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *cancelRecurring.Response) *CancelRecurringBookingResponse {
	sessions := resp.CancelledSessions
	if sessions == nil {
		sessions = []int64{}
	}

	return &CancelRecurringBookingResponse{
		RecurringBookingID: resp.RecurringBookingID,
		CancelledSessions:  sessions,
		CancelledBookings:  resp.CancelledBookings,
	}
}
