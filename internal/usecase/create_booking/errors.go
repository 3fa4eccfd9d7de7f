package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrAccessDenied возвращается, когда участник записывает другого участника
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("create_booking: coach not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrSlotNotAvailable возвращается, когда окно закрыто или уже занято
	ErrSlotNotAvailable = errors.New("create_booking: slot no longer available")

	// ErrSessionFull возвращается, когда в групповой сессии не осталось мест
	ErrSessionFull = errors.New("create_booking: session is full")

	// ErrAlreadyBooked возвращается при повторной записи участника на сессию
	ErrAlreadyBooked = errors.New("create_booking: member already booked this session")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
