package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// Request модель запроса на запись в слот
type Request struct {
	Caller    domain.Caller
	MemberID  int64 // 0 = сам вызывающий; тренер и администратор указывают явно
	CoachID   int64
	RoomID    int64 // 0 = зал из окна доступности
	StartTime time.Time
	EndTime   time.Time
}

// Window возвращает запрошенное окно
func (r *Request) Window() domain.Window {
	return domain.Window{Start: r.StartTime, End: r.EndTime}
}

// Response модель ответа с созданной записью
type Response struct {
	BookingID   int64
	SessionID   int64
	MemberID    int64
	CoachID     int64
	RoomID      int64
	StartTime   time.Time
	EndTime     time.Time
	SessionKind domain.SessionKind
	Capacity    int
	BookedCount int
	Status      domain.BookingStatus
	CreatedAt   time.Time
}
