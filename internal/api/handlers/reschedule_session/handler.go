package reschedule_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339 со смещением"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "сессия не найдена"
	msgForbidden          = "доступ запрещен"
	msgNotMovable         = "сессию нельзя перенести"
	msgSlotNotAvailable   = "slot no longer available"
	msgInvalidWindow      = "некорректное окно переноса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathInt64(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	serviceReq, err := req.ToServiceRequest(caller, sessionID)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Reschedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSessionNotFound), errors.Is(err, conflictguard.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Access denied: session_id=%d, user_id=%d",
				sessionID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, conflictguard.ErrConflict):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Slot not available: session_id=%d, start=%s",
				sessionID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, conflictguard.ErrNotMovable):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Not movable: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgNotMovable)

		case errors.Is(err, conflictguard.ErrValidation):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid window: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("PATCH /sessions/{id}/reschedule - Failed to reschedule: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/reschedule - Session rescheduled successfully: session_id=%d, user_id=%d",
		sessionID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
