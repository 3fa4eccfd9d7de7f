package get_coach_sessions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings"
)

const (
	msgInvalidCoachID = "некорректный ID тренера"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/sessions
// Query params: from (обязательно, YYYY-MM-DD), to (опционально, включительно), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	coachID, err := handlers.PathInt64(mux.Vars(r)["coachId"])
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/sessions - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /coaches/{id}/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(caller, coachID, query.Get("from"), query.Get("to"), query.Get("status"), h.location)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/sessions - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что это тренер сессий или администратор
	result, err := h.service.GetCoachSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /coaches/{id}/sessions - Access denied: coach_id=%d, user_id=%d",
				coachID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/sessions - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /coaches/{id}/sessions - Failed to get sessions: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coaches/{id}/sessions - Sessions retrieved successfully: coach_id=%d, count=%d",
		coachID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result.Sessions)
}
