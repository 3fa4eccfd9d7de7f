package delete_availability_addition

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability"
)

const (
	msgInvalidCoachID = "некорректный ID тренера"
	msgInvalidID      = "некорректный ID окна доступности"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "окно доступности не найдено"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/coaches/{coachId}/availability-additions/{additionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachID, err := handlers.PathInt64(vars["coachId"])
	if err != nil {
		h.logger.Warn("DELETE /coaches/{id}/availability-additions/{id} - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	id, err := handlers.PathInt64(vars["additionId"])
	if err != nil {
		h.logger.Warn("DELETE /coaches/{id}/availability-additions/{id} - Invalid addition ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("DELETE /coaches/{id}/availability-additions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteAddition(r.Context(), caller, coachID, id)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAdditionNotFound):
			h.logger.Warn("DELETE /coaches/{id}/availability-additions/{id} - Not found: coach_id=%d, id=%d", coachID, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /coaches/{id}/availability-additions/{id} - Access denied: coach_id=%d, user_id=%d",
				coachID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /coaches/{id}/availability-additions/{id} - Failed to delete addition: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /coaches/{id}/availability-additions/{id} - Deleted successfully: coach_id=%d, id=%d", coachID, id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
