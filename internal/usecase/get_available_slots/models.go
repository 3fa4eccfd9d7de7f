package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// MaxRangeDays максимальная длина диапазона дат (включительно)
const MaxRangeDays = 31

// Request модель запроса на получение доступных слотов
type Request struct {
	CoachIDs []int64
	From     time.Time // дата в часовом поясе студии
	To       time.Time // нулевая = From
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Slots []Slot
}

// Slot модель предлагаемого слота
type Slot struct {
	CoachID     int64
	CoachName   string
	RoomID      int64
	StartTime   time.Time
	EndTime     time.Time
	SessionKind domain.SessionKind
	Capacity    *int // только GROUP
	BookedCount *int // только GROUP
}

func fromDomainSlot(s domain.AvailableSlot, coachName string) Slot {
	slot := Slot{
		CoachID:     s.CoachID,
		CoachName:   coachName,
		RoomID:      s.RoomID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		SessionKind: s.SessionKind,
	}

	if s.SessionKind == domain.KindGroup {
		capacity, booked := s.Capacity, s.BookedCount
		slot.Capacity = &capacity
		slot.BookedCount = &booked
	}

	return slot
}
