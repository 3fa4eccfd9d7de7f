package directory

import "errors"

var (
	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("directory.repository: coach not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("directory.repository: room not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("directory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
