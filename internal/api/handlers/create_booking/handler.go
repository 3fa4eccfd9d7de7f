package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CoachScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339 со смещением"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры записи"
	msgForbidden          = "доступ запрещен"
	msgCoachNotFound      = "тренер не найден"
	msgRoomNotFound       = "зал не найден"
	msgSlotNotAvailable   = "slot no longer available"
	msgSessionFull        = "в групповой сессии нет свободных мест"
	msgAlreadyBooked      = "участник уже записан на эту сессию"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, coach_id=%d, start=%s",
				caller.UserID, req.CoachID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSessionFull):
			h.logger.Warn("POST /bookings - Session full: user_id=%d, coach_id=%d", caller.UserID, req.CoachID)
			handlers.RespondConflict(w, msgSessionFull)

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: user_id=%d, coach_id=%d", caller.UserID, req.CoachID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d, member_id=%d", caller.UserID, ptr.Value(req.MemberID))
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrCoachNotFound):
			h.logger.Warn("POST /bookings - Coach not found: coach_id=%d", req.CoachID)
			handlers.RespondNotFound(w, msgCoachNotFound)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", ptr.Value(req.RoomID))
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", caller.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, coach_id=%d, error=%v",
				caller.UserID, req.CoachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, session_id=%d, member_id=%d",
		result.BookingID, result.SessionID, result.MemberID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
