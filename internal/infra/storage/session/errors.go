package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrDuplicateOccurrence возвращается, когда сессия для вхождения шаблона уже существует
	ErrDuplicateOccurrence = errors.New("session.repository: occurrence already materialized")

	// ErrInvalidTransition возвращается, когда статус сессии не позволяет изменение
	ErrInvalidTransition = errors.New("session.repository: invalid status transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
