package materialize_sessions

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном горизонте
	ErrInvalidInput = errors.New("materialize_sessions: invalid input data")

	// ErrInternal возвращается, когда не удалось получить список шаблонов
	ErrInternal = errors.New("materialize_sessions: internal error")
)
