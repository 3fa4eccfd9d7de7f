package create_availability_addition

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
	msgRoomNotFound       = "зал не найден"
	msgInvalidData        = "некорректные данные окна доступности"
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

// Handle POST /api/v1/coaches/{coachId}/availability-additions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	coachID, err := handlers.PathInt64(mux.Vars(r)["coachId"])
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/availability-additions - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /coaches/{id}/availability-additions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAdditionRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /coaches/{id}/availability-additions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	serviceReq, err := req.ToServiceRequest(caller, coachID)
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/availability-additions - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.CreateAddition(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /coaches/{id}/availability-additions - Access denied: coach_id=%d, user_id=%d",
				coachID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrCoachNotFound):
			h.logger.Warn("POST /coaches/{id}/availability-additions - Coach not found: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgCoachNotFound)

		case errors.Is(err, availability.ErrRoomNotFound):
			h.logger.Warn("POST /coaches/{id}/availability-additions - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /coaches/{id}/availability-additions - Invalid data: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /coaches/{id}/availability-additions - Failed to create addition: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coaches/{id}/availability-additions - Addition created successfully: addition_id=%d, coach_id=%d",
		result.ID, coachID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
