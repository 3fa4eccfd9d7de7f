package advance_statuses

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	advanceStatuses "github.com/m04kA/SMC-CoachScheduler/internal/usecase/advance_statuses"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339 со смещением"
	msgFutureNow          = "время не может быть в будущем"
)

type Handler struct {
	useCase AdvanceStatusesUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceStatusesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/jobs/advance-statuses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/jobs/advance-statuses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /internal/jobs/advance-statuses - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, advanceStatuses.ErrInvalidInput) {
			h.logger.Warn("POST /internal/jobs/advance-statuses - Invalid now: %v", err)
			handlers.RespondBadRequest(w, msgFutureNow)
			return
		}

		h.logger.Error("POST /internal/jobs/advance-statuses - Run failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/jobs/advance-statuses - Run finished: completed=%d, purged=%d",
		result.Completed, result.PurgedExceptions)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
