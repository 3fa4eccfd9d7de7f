package get_available_slots

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CoachScheduler/internal/usecase/get_available_slots"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	CoachID     int64  `json:"coachId"`
	CoachName   string `json:"coachName"`
	RoomID      int64  `json:"roomId"`
	StartTime   string `json:"startTime"` // RFC3339 со смещением студии
	EndTime     string `json:"endTime"`
	SessionKind string `json:"sessionKind"`
	Capacity    *int   `json:"capacity,omitempty"`
	BookedCount *int   `json:"bookedCount,omitempty"`
}

// ParseCoachIDs разбирает список ID через запятую
func ParseCoachIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		if id <= 0 {
			return nil, errors.New("coach id must be positive")
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, errors.New("no coach ids")
	}
	return ids, nil
}

// ToUseCaseRequest формирует запрос к use case. Пустой to означает один день.
func ToUseCaseRequest(coachIDs []int64, fromStr, toStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		CoachIDs: coachIDs,
		From:     from,
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
		req.To = to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) []SlotResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))

	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			CoachID:     s.CoachID,
			CoachName:   s.CoachName,
			RoomID:      s.RoomID,
			StartTime:   s.StartTime.Format(domain.TimestampFormat),
			EndTime:     s.EndTime.Format(domain.TimestampFormat),
			SessionKind: string(s.SessionKind),
			Capacity:    s.Capacity,
			BookedCount: s.BookedCount,
		})
	}

	return slots
}
