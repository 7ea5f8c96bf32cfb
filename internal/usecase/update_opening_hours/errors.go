package update_opening_hours

import "errors"

var (
	// ErrAccessDenied рабочие часы меняют только сотрудники
	ErrAccessDenied = errors.New("update_opening_hours: access denied")

	// ErrScheduleBusy расписание изменяется параллельно, можно повторить
	ErrScheduleBusy = errors.New("update_opening_hours: schedule is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_opening_hours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_opening_hours: internal error")
)
