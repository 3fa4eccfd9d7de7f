package run_materialization

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	materializeSessions "github.com/m04kA/SMC-CoachScheduler/internal/usecase/materialize_sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHorizon     = "горизонт должен быть от 1 до 52 недель"
)

type Handler struct {
	useCase MaterializeSessionsUseCase
	logger  Logger
}

func NewHandler(useCase MaterializeSessionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/jobs/materialize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MaterializeRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /internal/jobs/materialize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+handlers.ValidationMessage(err))
		return
	}

	report, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if errors.Is(err, materializeSessions.ErrInvalidInput) {
			h.logger.Warn("POST /internal/jobs/materialize - Invalid horizon: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}

		h.logger.Error("POST /internal/jobs/materialize - Run failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/jobs/materialize - Run finished: run_id=%s, created=%d, skipped=%d, gaps=%d, errors=%d",
		report.RunID, report.SessionsCreated, report.Skipped, len(report.Gaps), len(report.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseReport(report))
}
