package guard

import "errors"

var (
	// ErrInvalidInput некорректное время в запросе на проверку
	ErrInvalidInput = errors.New("guard: invalid input")

	// ErrInternal ошибка чтения расписания
	ErrInternal = errors.New("guard: internal error")
)
