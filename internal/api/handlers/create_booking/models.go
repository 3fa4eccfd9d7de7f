package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-CoachScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MemberID  *int64 `json:"memberId,omitempty" validate:"omitempty,gt=0"`
	CoachID   int64  `json:"coachId" validate:"required,gt=0"`
	RoomID    *int64 `json:"roomId,omitempty" validate:"omitempty,gt=0"`
	StartTime string `json:"startTime" validate:"required"` // "2025-10-15T10:00:00+03:00"
	EndTime   string `json:"endTime" validate:"required"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	SessionID   int64  `json:"sessionId"`
	MemberID    int64  `json:"memberId"`
	CoachID     int64  `json:"coachId"`
	RoomID      int64  `json:"roomId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	SessionKind string `json:"sessionKind"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(caller domain.Caller) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Caller:    caller,
		CoachID:   r.CoachID,
		StartTime: start,
		EndTime:   end,
	}
	if r.MemberID != nil {
		req.MemberID = *r.MemberID
	}
	if r.RoomID != nil {
		req.RoomID = *r.RoomID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.BookingID,
		SessionID:   resp.SessionID,
		MemberID:    resp.MemberID,
		CoachID:     resp.CoachID,
		RoomID:      resp.RoomID,
		StartTime:   resp.StartTime.Format(domain.TimestampFormat),
		EndTime:     resp.EndTime.Format(domain.TimestampFormat),
		SessionKind: string(resp.SessionKind),
		Capacity:    resp.Capacity,
		BookedCount: resp.BookedCount,
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt.Format(domain.TimestampFormat),
	}
}
