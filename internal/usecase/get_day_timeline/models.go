package get_day_timeline

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// Request модель запроса расписания на день
type Request struct {
	Date time.Time
}

// Response расписание дня: свободные 30-минутные слоты и занятые интервалы
type Response struct {
	Date   time.Time
	IsOpen bool
	Open   types.TimeString // пусто, если выходной
	Close  types.TimeString
	Slots  []domain.TimelineSlot
}
