package cancel_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	cancelRecurring "github.com/m04kA/SMC-CoachScheduler/internal/usecase/cancel_recurring_booking"
)

const (
	msgInvalidID     = "некорректный ID регулярной записи"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "регулярная запись не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase CancelRecurringBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelRecurringBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/recurring-bookings/{recurringBookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(mux.Vars(r)["recurringBookingId"])
	if err != nil {
		h.logger.Warn("PATCH /recurring-bookings/{id}/cancel - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("PATCH /recurring-bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelRecurring.Request{
		Caller:             caller,
		RecurringBookingID: id,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelRecurring.ErrRecurringBookingNotFound):
			h.logger.Warn("PATCH /recurring-bookings/{id}/cancel - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelRecurring.ErrAccessDenied):
			h.logger.Warn("PATCH /recurring-bookings/{id}/cancel - Access denied: id=%d, user_id=%d", id, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelRecurring.ErrInvalidInput):
			h.logger.Warn("PATCH /recurring-bookings/{id}/cancel - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("PATCH /recurring-bookings/{id}/cancel - Failed to cancel: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /recurring-bookings/{id}/cancel - Cancelled successfully: id=%d, sessions=%d, bookings=%d",
		id, len(result.CancelledSessions), result.CancelledBookings)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
