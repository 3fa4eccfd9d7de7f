package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("availability: coach not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("availability: room not found")

	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("availability: rule not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("availability: blocked slot not found")

	// ErrAdditionNotFound возвращается, когда дополнительное окно не найдено
	ErrAdditionNotFound = errors.New("availability: availability addition not found")

	// ErrAccessDenied возвращается, когда тренер управляет чужим расписанием
	ErrAccessDenied = errors.New("availability: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
