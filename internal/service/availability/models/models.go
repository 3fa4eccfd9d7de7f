package models

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание недельного правила
type CreateRuleRequest struct {
	Caller              domain.Caller
	CoachID             int64
	RoomID              int64
	DayOfWeek           int    // 0 = воскресенье
	StartTime           string // "HH:MM"
	EndTime             string // "HH:MM"
	SessionKind         string
	Capacity            int // только GROUP
	SlotDurationMinutes int // только INDIVIDUAL, 0 = по умолчанию
}

// CreateBlockRequest запрос на блокировку времени
type CreateBlockRequest struct {
	Caller    domain.Caller
	CoachID   int64
	StartTime time.Time
	EndTime   time.Time
	Reason    *string
}

// CreateAdditionRequest запрос на добавление окна доступности
type CreateAdditionRequest struct {
	Caller              domain.Caller
	CoachID             int64
	RoomID              int64
	StartTime           time.Time
	EndTime             time.Time
	SessionKind         string // пусто = INDIVIDUAL
	Capacity            int
	SlotDurationMinutes int
}

// Response модели

// RuleResponse недельное правило
type RuleResponse struct {
	ID                  int64     `json:"id"`
	CoachID             int64     `json:"coachId"`
	RoomID              int64     `json:"roomId"`
	DayOfWeek           int       `json:"dayOfWeek"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	SessionKind         string    `json:"sessionKind"`
	Capacity            *int      `json:"capacity,omitempty"`
	SlotDurationMinutes *int      `json:"slotDurationMinutes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// BlockResponse блокировка времени
type BlockResponse struct {
	ID        int64     `json:"id"`
	CoachID   int64     `json:"coachId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdditionResponse дополнительное окно доступности
type AdditionResponse struct {
	ID                  int64     `json:"id"`
	CoachID             int64     `json:"coachId"`
	RoomID              int64     `json:"roomId"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	SessionKind         string    `json:"sessionKind"`
	Capacity            *int      `json:"capacity,omitempty"`
	SlotDurationMinutes *int      `json:"slotDurationMinutes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainRule конвертирует правило в DTO
func FromDomainRule(r *domain.WeeklyAvailabilityRule) *RuleResponse {
	resp := &RuleResponse{
		ID:          r.ID,
		CoachID:     r.CoachID,
		RoomID:      r.RoomID,
		DayOfWeek:   int(r.DayOfWeek),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		SessionKind: string(r.SessionKind),
		CreatedAt:   r.CreatedAt,
	}
	resp.Capacity, resp.SlotDurationMinutes = kindFields(r.SessionKind, r.Capacity, r.SlotDurationMinutes)
	return resp
}

// FromDomainBlock конвертирует блокировку в DTO
func FromDomainBlock(b *domain.BlockedSlot) *BlockResponse {
	return &BlockResponse{
		ID:        b.ID,
		CoachID:   b.CoachID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainAddition конвертирует дополнительное окно в DTO
func FromDomainAddition(a *domain.AvailabilityAddition) *AdditionResponse {
	resp := &AdditionResponse{
		ID:          a.ID,
		CoachID:     a.CoachID,
		RoomID:      a.RoomID,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		SessionKind: string(a.SessionKind),
		CreatedAt:   a.CreatedAt,
	}
	resp.Capacity, resp.SlotDurationMinutes = kindFields(a.SessionKind, a.Capacity, a.SlotDurationMinutes)
	return resp
}

// kindFields оставляет только поля, относящиеся к виду сессии
func kindFields(kind domain.SessionKind, capacity, duration int) (*int, *int) {
	if kind == domain.KindGroup {
		return &capacity, nil
	}
	return nil, &duration
}
