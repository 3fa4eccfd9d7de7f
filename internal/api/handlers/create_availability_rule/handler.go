package create_availability_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/availability"
)

const (
	msgInvalidCoachID     = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgCoachNotFound      = "тренер не найден"
	msgRoomNotFound       = "зал не найден"
	msgInvalidData        = "некорректные данные правила доступности"
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

// Handle POST /api/v1/coaches/{coachId}/availability-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	coachID, err := handlers.PathInt64(mux.Vars(r)["coachId"])
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/availability-rules - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /coaches/{id}/availability-rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRuleRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /coaches/{id}/availability-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	// Сервис сам проверит права тренера и ссылки на зал
	result, err := h.service.CreateRule(r.Context(), req.ToServiceRequest(caller, coachID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /coaches/{id}/availability-rules - Access denied: coach_id=%d, user_id=%d",
				coachID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrCoachNotFound):
			h.logger.Warn("POST /coaches/{id}/availability-rules - Coach not found: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgCoachNotFound)

		case errors.Is(err, availability.ErrRoomNotFound):
			h.logger.Warn("POST /coaches/{id}/availability-rules - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /coaches/{id}/availability-rules - Invalid data: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /coaches/{id}/availability-rules - Failed to create rule: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coaches/{id}/availability-rules - Rule created successfully: rule_id=%d, coach_id=%d",
		result.ID, coachID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
