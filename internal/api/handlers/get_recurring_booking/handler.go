package get_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/recurring"
)

const (
	msgInvalidID     = "некорректный ID регулярной записи"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "регулярная запись не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service RecurringService
	logger  Logger
}

func NewHandler(service RecurringService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/recurring-bookings/{recurringBookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(mux.Vars(r)["recurringBookingId"])
	if err != nil {
		h.logger.Warn("GET /recurring-bookings/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /recurring-bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id, caller)
	if err != nil {
		switch {
		case errors.Is(err, recurring.ErrRecurringBookingNotFound):
			h.logger.Warn("GET /recurring-bookings/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recurring.ErrAccessDenied):
			h.logger.Warn("GET /recurring-bookings/{id} - Access denied: id=%d, user_id=%d", id, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /recurring-bookings/{id} - Failed to get recurring booking: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /recurring-bookings/{id} - Recurring booking retrieved successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
