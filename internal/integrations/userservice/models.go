package userservice

// Vehicle автомобиль клиента из UserService
type Vehicle struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"ownerId"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
