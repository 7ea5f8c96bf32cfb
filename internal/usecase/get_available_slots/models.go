package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceID       int64
	DurationMinutes int

	// Slots ленивая последовательность в порядке возрастания начала.
	// Пустая, если день выходной (DurationMinutes тогда 0).
	Slots iter.Seq[domain.Slot]
}
