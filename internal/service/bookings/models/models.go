package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Caller             domain.Caller
	CancellationReason string
}

// GetMemberBookingsRequest запрос на получение записей участника
type GetMemberBookingsRequest struct {
	MemberID int64
	Status   *string
}

// GetCoachSessionsRequest запрос на получение сессий тренера за период
type GetCoachSessionsRequest struct {
	Caller  domain.Caller
	CoachID int64
	From    time.Time // начало периода, включительно
	To      time.Time // конец периода, не включительно
	Status  *string
}

// RescheduleRequest запрос на перенос сессии
type RescheduleRequest struct {
	Caller    domain.Caller
	SessionID int64
	StartTime time.Time
	EndTime   time.Time
}

// Response модели

// SessionResponse данные сессии
type SessionResponse struct {
	ID                 int64     `json:"id"`
	CoachID            int64     `json:"coachId"`
	RoomID             int64     `json:"roomId"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	SessionKind        string    `json:"sessionKind"`
	Capacity           int       `json:"capacity"`
	BookedCount        *int      `json:"bookedCount,omitempty"`
	Status             string    `json:"status"`
	RecurringBookingID *int64    `json:"recurringBookingId,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64            `json:"id"`
	SessionID          int64            `json:"sessionId"`
	MemberID           int64            `json:"memberId"`
	Status             string           `json:"status"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *string          `json:"cancelledAt,omitempty"` // ISO 8601
	Session            *SessionResponse `json:"session,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		SessionID:          b.SessionID,
		MemberID:           b.MemberID,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainSession конвертирует сессию в DTO.
// bookedCount заполняется только для групповых сессий.
func FromDomainSession(s *domain.TrainingSession, bookedCount int) *SessionResponse {
	resp := &SessionResponse{
		ID:                 s.ID,
		CoachID:            s.CoachID,
		RoomID:             s.RoomID,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		SessionKind:        string(s.SessionKind),
		Capacity:           s.Capacity,
		Status:             string(s.Status),
		RecurringBookingID: s.RecurringBookingID,
	}

	if s.SessionKind == domain.KindGroup {
		resp.BookedCount = &bookedCount
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.BookingConfirmed, domain.BookingCancelledByMember, domain.BookingCancelledByCoach:
		return s, nil
	}

	return "", ErrInvalidStatus
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus с валидацией
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)

	switch s {
	case domain.SessionScheduled, domain.SessionCompleted, domain.SessionCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}
