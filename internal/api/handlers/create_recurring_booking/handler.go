package create_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/recurring"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgCoachNotFound      = "тренер не найден"
	msgRoomNotFound       = "зал не найден"
	msgInvalidData        = "некорректные данные регулярной записи"
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

// Handle POST /api/v1/recurring-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /recurring-bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRecurringBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /recurring-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, recurring.ErrAccessDenied):
			h.logger.Warn("POST /recurring-bookings - Access denied: user_id=%d, member_id=%d", caller.UserID, ptr.Value(req.MemberID))
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, recurring.ErrCoachNotFound):
			h.logger.Warn("POST /recurring-bookings - Coach not found: coach_id=%d", req.CoachID)
			handlers.RespondNotFound(w, msgCoachNotFound)

		case errors.Is(err, recurring.ErrRoomNotFound):
			h.logger.Warn("POST /recurring-bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, recurring.ErrInvalidInput):
			h.logger.Warn("POST /recurring-bookings - Invalid data: user_id=%d, error=%v", caller.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /recurring-bookings - Failed to create recurring booking: user_id=%d, error=%v",
				caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurring-bookings - Recurring booking created successfully: id=%d, member_id=%d, coach_id=%d",
		result.ID, result.MemberID, result.CoachID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
