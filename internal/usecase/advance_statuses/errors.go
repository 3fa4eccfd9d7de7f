package advance_statuses

import "errors"

var (
	// ErrInvalidInput возвращается, когда переданное время еще не наступило
	ErrInvalidInput = errors.New("advance_statuses: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("advance_statuses: internal error")
)
