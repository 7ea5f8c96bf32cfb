package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrServiceNotFound возвращается, когда новая услуга не найдена
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на изменение
	ErrAccessDenied = errors.New("update_appointment: access denied")

	// ErrScheduleBusy расписание изменяется другим запросом, можно повторить
	ErrScheduleBusy = errors.New("update_appointment: schedule is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
