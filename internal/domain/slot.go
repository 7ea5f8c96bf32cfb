package domain

import "github.com/m04kA/SMC-RepairBookingService/pkg/types"

// Slot is a candidate window where a new appointment could be placed.
// Slots are computed on demand and never stored.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// TimelineSlot is an entry of the whole-day schedule: either a free
// bookable slot or the interval of an existing appointment.
type TimelineSlot struct {
	StartTime     types.TimeString
	EndTime       types.TimeString
	Bookable      bool
	AppointmentID *int64
}
