package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-CoachScheduler/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		BookingID:   100,
		SessionID:   5,
		MemberID:    req.Caller.UserID,
		CoachID:     req.CoachID,
		RoomID:      10,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SessionKind: domain.KindIndividual,
		Capacity:    1,
		BookedCount: 1,
		Status:      domain.BookingConfirmed,
	}, nil
}

func newRequest(body string, caller *domain.Caller) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if caller != nil {
		r = r.WithContext(middleware.WithCaller(r.Context(), *caller))
	}
	return r
}

const validBody = `{"coachId":1,"startTime":"2025-10-20T10:00:00+03:00","endTime":"2025-10-20T11:00:00+03:00"}`

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, &domain.Caller{UserID: 7, Role: domain.ActorMember}))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(0), uc.got.MemberID)
	assert.Equal(t, int64(0), uc.got.RoomID)
	assert.True(t, uc.got.StartTime.Equal(time.Date(2025, 10, 20, 7, 0, 0, 0, time.UTC)))

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "2025-10-20T10:00:00+03:00", body.StartTime)
	assert.Equal(t, "CONFIRMED", body.Status)
}

func TestHandler_Unauthorized(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "unknown field", body: `{"coachId":1,"startTime":"2025-10-20T10:00:00Z","endTime":"2025-10-20T11:00:00Z","x":1}`},
		{name: "missing coach", body: `{"startTime":"2025-10-20T10:00:00Z","endTime":"2025-10-20T11:00:00Z"}`},
		{name: "time without offset", body: `{"coachId":1,"startTime":"2025-10-20 10:00","endTime":"2025-10-20 11:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body, &domain.Caller{UserID: 7, Role: domain.ActorMember}))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: createBooking.ErrSlotNotAvailable, code: http.StatusConflict},
		{err: createBooking.ErrSessionFull, code: http.StatusConflict},
		{err: createBooking.ErrAlreadyBooked, code: http.StatusConflict},
		{err: createBooking.ErrAccessDenied, code: http.StatusForbidden},
		{err: createBooking.ErrCoachNotFound, code: http.StatusNotFound},
		{err: createBooking.ErrRoomNotFound, code: http.StatusNotFound},
		{err: createBooking.ErrInvalidInput, code: http.StatusBadRequest},
		{err: createBooking.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(validBody, &domain.Caller{UserID: 7, Role: domain.ActorMember}))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandler_ConflictMessage(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: createBooking.ErrSlotNotAvailable}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, &domain.Caller{UserID: 7, Role: domain.ActorMember}))

	assert.JSONEq(t, `{"error":"slot no longer available"}`, rec.Body.String())
}
