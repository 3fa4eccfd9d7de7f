package conflictguard

import (
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// ReserveRequest параметры резервирования окна тренера и зала
type ReserveRequest struct {
	CoachID            int64
	RoomID             int64
	Start              time.Time
	End                time.Time
	Kind               domain.SessionKind
	Capacity           int
	RecurringBookingID *int64 // для сессий из шаблона
	MemberID           *int64 // для индивидуальных сессий
	ExcludeSessionID   int64  // сессия, которая не считается конфликтом
}

// Window возвращает запрошенное окно
func (r *ReserveRequest) Window() domain.Window {
	return domain.Window{Start: r.Start, End: r.End}
}
