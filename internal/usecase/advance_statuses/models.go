package advance_statuses

import "time"

// Request модель запроса на перевод статусов
type Request struct {
	Now *time.Time // nil = текущее время
}

// Response итоги перевода
type Response struct {
	Now              time.Time
	Completed        int64
	PurgedExceptions int64
}
