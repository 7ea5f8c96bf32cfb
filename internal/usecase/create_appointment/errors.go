package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден в UserService
	ErrVehicleNotFound = errors.New("create_appointment: vehicle not found")

	// ErrAccessDenied возвращается, когда клиент записывает чужой автомобиль
	ErrAccessDenied = errors.New("create_appointment: access denied")

	// ErrScheduleBusy расписание на дату изменяется другим запросом, можно повторить
	ErrScheduleBusy = errors.New("create_appointment: schedule is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
