package list_availability_rules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability"
)

const (
	msgInvalidCoachID = "некорректный ID тренера"
	msgCoachNotFound  = "тренер не найден"
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

// Handle GET /api/v1/coaches/{coachId}/availability-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	coachID, err := handlers.PathInt64(mux.Vars(r)["coachId"])
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/availability-rules - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	rules, err := h.service.ListRules(r.Context(), coachID)
	if err != nil {
		if errors.Is(err, availability.ErrCoachNotFound) {
			h.logger.Warn("GET /coaches/{id}/availability-rules - Coach not found: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgCoachNotFound)
			return
		}

		h.logger.Error("GET /coaches/{id}/availability-rules - Failed to list rules: coach_id=%d, error=%v",
			coachID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /coaches/{id}/availability-rules - Rules retrieved successfully: coach_id=%d, count=%d",
		coachID, len(rules))
	handlers.RespondJSON(w, http.StatusOK, rules)
}
