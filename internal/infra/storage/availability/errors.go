package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило доступности не найдено
	ErrRuleNotFound = errors.New("availability.repository: rule not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена у указанного тренера
	ErrBlockNotFound = errors.New("availability.repository: blocked slot not found")

	// ErrAdditionNotFound возвращается, когда добавленное окно не найдено у указанного тренера
	ErrAdditionNotFound = errors.New("availability.repository: availability addition not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
