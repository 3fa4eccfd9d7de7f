package cancel_recurring_booking

import "github.com/m04kA/SMC-CoachScheduler/internal/domain"

// CancellationReason причина, записываемая в отмененные бронирования
const CancellationReason = "recurring booking cancelled"

// Request модель запроса на отмену шаблона
type Request struct {
	Caller             domain.Caller
	RecurringBookingID int64
}

// Response итоги отмены
type Response struct {
	RecurringBookingID int64
	CancelledSessions  []int64
	CancelledBookings  int64
}
