package reschedule_session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) Reschedule(_ context.Context, req *models.RescheduleRequest) (*models.SessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionResponse{ID: req.SessionID, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "ok", code: http.StatusOK},
		{name: "conflict", err: fmt.Errorf("%w: overlaps session 3", conflictguard.ErrConflict), code: http.StatusConflict},
		{name: "not movable", err: conflictguard.ErrNotMovable, code: http.StatusConflict},
		{name: "invalid window", err: conflictguard.ErrValidation, code: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrSessionNotFound, code: http.StatusNotFound},
		{name: "forbidden", err: bookings.ErrAccessDenied, code: http.StatusForbidden},
		{name: "internal", err: bookings.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})

			r := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/5/reschedule",
				strings.NewReader(`{"startTime":"2025-10-20T12:00:00Z","endTime":"2025-10-20T13:00:00Z"}`))
			r = mux.SetURLVars(r, map[string]string{"sessionId": "5"})
			r = r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{UserID: 1, Role: domain.ActorCoach}))

			rec := httptest.NewRecorder()
			h.Handle(rec, r)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
