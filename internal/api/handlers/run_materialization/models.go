package run_materialization

import (
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	materializeSessions "github.com/m04kA/SMC-CoachScheduler/internal/usecase/materialize_sessions"
	"github.com/m04kA/SMC-CoachScheduler/pkg/ptr"
)

// MaterializeRequest HTTP request model. Пустое тело = горизонт по умолчанию.
type MaterializeRequest struct {
	HorizonWeeks *int `json:"horizonWeeks,omitempty" validate:"omitempty,min=1,max=52"`
}

// ReportResponse HTTP response model
type ReportResponse struct {
	RunID           string          `json:"runId"`
	WeeksGenerated  int             `json:"weeksGenerated"`
	SessionsCreated int             `json:"sessionsCreated"`
	Skipped         int             `json:"skipped"`
	Gaps            []GapResponse   `json:"gaps"`
	Errors          []ErrorResponse `json:"errors"`
}

// GapResponse вхождение без созданной сессии
type GapResponse struct {
	RecurringBookingID int64  `json:"recurringBookingId"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Reason             string `json:"reason"`
}

// ErrorResponse ошибка обработки шаблона
type ErrorResponse struct {
	RecurringBookingID int64  `json:"recurringBookingId"`
	Message            string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MaterializeRequest) ToUseCaseRequest() *materializeSessions.Request {
	return &materializeSessions.Request{HorizonWeeks: ptr.Value(r.HorizonWeeks)}
}

// FromUseCaseReport конвертирует отчет use case в HTTP модель
func FromUseCaseReport(report *materializeSessions.Report) *ReportResponse {
	resp := &ReportResponse{
		RunID:           report.RunID,
		WeeksGenerated:  report.WeeksGenerated,
		SessionsCreated: report.SessionsCreated,
		Skipped:         report.Skipped,
		Gaps:            make([]GapResponse, 0, len(report.Gaps)),
		Errors:          make([]ErrorResponse, 0, len(report.Errors)),
	}

	for _, g := range report.Gaps {
		resp.Gaps = append(resp.Gaps, GapResponse{
			RecurringBookingID: g.RecurringBookingID,
			StartTime:          g.StartTime.Format(domain.TimestampFormat),
			EndTime:            g.EndTime.Format(domain.TimestampFormat),
			Reason:             g.Reason,
		})
	}

	for _, e := range report.Errors {
		resp.Errors = append(resp.Errors, ErrorResponse{
			RecurringBookingID: e.RecurringBookingID,
			Message:            e.Message,
		})
	}

	return resp
}
