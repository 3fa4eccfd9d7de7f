package get_member_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "некорректный статус бронирования"
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

// Handle GET /api/v1/members/{memberId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, err := handlers.PathInt64(mux.Vars(r)["memberId"])
	if err != nil {
		h.logger.Warn("GET /members/{memberId}/bookings - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /members/{memberId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю видит сам участник и администратор
	if caller.Role != domain.ActorAdmin && caller.UserID != memberID {
		h.logger.Warn("GET /members/{memberId}/bookings - Access denied: member_id=%d, user_id=%d",
			memberID, caller.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetMemberBookingsRequest{MemberID: memberID}
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	result, err := h.service.GetMemberBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /members/{memberId}/bookings - Invalid status: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}

		h.logger.Error("GET /members/{memberId}/bookings - Failed to get bookings: member_id=%d, error=%v",
			memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /members/{memberId}/bookings - Bookings retrieved successfully: member_id=%d, count=%d",
		memberID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
