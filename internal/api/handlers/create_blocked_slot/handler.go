package create_blocked_slot

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
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339 со смещением"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgCoachNotFound      = "тренер не найден"
	msgInvalidData        = "некорректный интервал блокировки"
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

// Handle POST /api/v1/coaches/{coachId}/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	coachID, err := handlers.PathInt64(mux.Vars(r)["coachId"])
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/blocked-slots - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /coaches/{id}/blocked-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /coaches/{id}/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	serviceReq, err := req.ToServiceRequest(caller, coachID)
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/blocked-slots - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.CreateBlock(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /coaches/{id}/blocked-slots - Access denied: coach_id=%d, user_id=%d",
				coachID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrCoachNotFound):
			h.logger.Warn("POST /coaches/{id}/blocked-slots - Coach not found: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgCoachNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /coaches/{id}/blocked-slots - Invalid data: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /coaches/{id}/blocked-slots - Failed to create block: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coaches/{id}/blocked-slots - Block created successfully: block_id=%d, coach_id=%d",
		result.ID, coachID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
