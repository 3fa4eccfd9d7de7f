package recurring

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("recurring: invalid input data")

	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("recurring: coach not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("recurring: room not found")

	// ErrRecurringBookingNotFound возвращается, когда шаблон не найден
	ErrRecurringBookingNotFound = errors.New("recurring: recurring booking not found")

	// ErrAccessDenied возвращается, когда участник работает с чужим шаблоном
	ErrAccessDenied = errors.New("recurring: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("recurring: internal error")
)
