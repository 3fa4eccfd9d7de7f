package conflictguard

import "errors"

var (
	// ErrValidation возвращается при некорректном окне или параметрах сессии
	ErrValidation = errors.New("conflictguard: invalid reservation")

	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("conflictguard: coach not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("conflictguard: room not found")

	// ErrSessionNotFound возвращается, когда переносимая сессия не найдена
	ErrSessionNotFound = errors.New("conflictguard: session not found")

	// ErrConflict возвращается, когда окно пересекается с другой сессией тренера или зала
	ErrConflict = errors.New("conflictguard: slot no longer available")

	// ErrNotMovable возвращается при переносе завершенной, отмененной или сгенерированной сессии
	ErrNotMovable = errors.New("conflictguard: session cannot be moved")

	// ErrDuplicateOccurrence возвращается, когда вхождение шаблона уже материализовано
	ErrDuplicateOccurrence = errors.New("conflictguard: occurrence already materialized")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("conflictguard: internal error")
)
