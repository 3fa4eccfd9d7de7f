package cancel_recurring_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_recurring_booking: invalid input data")

	// ErrRecurringBookingNotFound возвращается, когда шаблон не найден
	ErrRecurringBookingNotFound = errors.New("cancel_recurring_booking: recurring booking not found")

	// ErrAccessDenied возвращается, когда вызывающий не владеет шаблоном
	ErrAccessDenied = errors.New("cancel_recurring_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_recurring_booking: internal error")
)
