package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CoachScheduler/internal/usecase/get_available_slots"
)

const (
	msgMissingCoachIDs = "параметр coachIds обязателен"
	msgInvalidCoachIDs = "некорректный список ID тренеров"
	msgMissingFrom     = "параметр from обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange    = "некорректный диапазон дат"
	msgRangeTooLong    = "диапазон дат не может превышать 31 день"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/slots
// Query params: coachIds (обязательно, через запятую), from (обязательно, YYYY-MM-DD), to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	coachIDsStr := query.Get("coachIds")
	if coachIDsStr == "" {
		h.logger.Warn("GET /slots - Missing coach IDs")
		handlers.RespondBadRequest(w, msgMissingCoachIDs)
		return
	}

	coachIDs, err := ParseCoachIDs(coachIDsStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid coach IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachIDs)
		return
	}

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /slots - Missing from date")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	// Даты разбираются в часовом поясе студии
	useCaseReq, err := ToUseCaseRequest(coachIDs, fromStr, query.Get("to"), h.location)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRangeTooLong):
			h.logger.Warn("GET /slots - Range too long: from=%s, to=%s", fromStr, query.Get("to"))
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /slots - Failed to get slots: coach_ids=%v, error=%v", coachIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots - Slots retrieved successfully: coach_ids=%v, slots_count=%d", coachIDs, len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
