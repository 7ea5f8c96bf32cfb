package openinghours

import "errors"

var (
	// ErrOpeningHoursNotFound возвращается, когда для дня недели нет рабочего окна (выходной)
	ErrOpeningHoursNotFound = errors.New("openinghours.repository: opening hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("openinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("openinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("openinghours.repository: failed to scan row")
)
