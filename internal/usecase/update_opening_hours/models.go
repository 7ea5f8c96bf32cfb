package update_opening_hours

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// Request задает окно для дня недели. Start и End оба nil - день становится выходным.
type Request struct {
	Caller  domain.Caller
	Weekday int
	Start   *types.TimeString
	End     *types.TimeString
}

func (r *Request) closes() bool {
	return r.Start == nil && r.End == nil
}

// Response состояние дня недели после изменения
type Response struct {
	Weekday   int
	IsOpen    bool
	Start     types.TimeString
	End       types.TimeString
	UpdatedAt time.Time
}
