package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RepairBookingService/pkg/ptr"
)

func TestCheckPlacement(t *testing.T) {
	window := span(t, "09:00", "18:00")
	booked := []Booking{
		{ID: 1, Interval: span(t, "10:00", "11:00")},
		{ID: 2, Interval: span(t, "14:00", "15:00")},
	}

	tests := []struct {
		name      string
		window    *Interval
		proposed  Interval
		excludeID *int64
		wantErr   error
	}{
		{name: "free slot", window: &window, proposed: span(t, "12:00", "13:00")},
		{name: "touching previous end", window: &window, proposed: span(t, "11:00", "11:30")},
		{name: "touching next start", window: &window, proposed: span(t, "13:00", "14:00")},
		{name: "exactly the window", window: &window, proposed: span(t, "09:00", "09:30")},
		{name: "ends at closing", window: &window, proposed: span(t, "17:30", "18:00")},
		{name: "before opening", window: &window, proposed: span(t, "08:30", "09:00"), wantErr: ErrOutsideOpeningHours},
		{name: "after closing", window: &window, proposed: span(t, "17:45", "18:15"), wantErr: ErrOutsideOpeningHours},
		{name: "closed day", window: nil, proposed: span(t, "10:00", "10:30"), wantErr: ErrOutsideOpeningHours},
		{name: "overlaps", window: &window, proposed: span(t, "10:30", "11:30"), wantErr: ErrOverlap},
		{name: "inside other", window: &window, proposed: span(t, "14:15", "14:30"), wantErr: ErrOverlap},
		{name: "self excluded", window: &window, proposed: span(t, "10:30", "11:30"), excludeID: ptr.Ptr(int64(1))},
		{name: "other still conflicts", window: &window, proposed: span(t, "10:30", "14:30"), excludeID: ptr.Ptr(int64(1)), wantErr: ErrOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPlacement(tt.window, tt.proposed, booked, tt.excludeID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, ValidateWindow(0, span(t, "09:00", "18:00")))
	assert.NoError(t, ValidateWindow(6, span(t, "00:00", "23:59")))
	assert.ErrorIs(t, ValidateWindow(7, span(t, "09:00", "18:00")), ErrInvalidWeekday)
	assert.ErrorIs(t, ValidateWindow(-1, span(t, "09:00", "18:00")), ErrInvalidWeekday)
	assert.ErrorIs(t, ValidateWindow(1, span(t, "18:00", "09:00")), ErrInvalidRange)
	assert.ErrorIs(t, ValidateWindow(1, span(t, "09:00", "09:00")), ErrInvalidRange)
}

func TestCheckWindowChange(t *testing.T) {
	existing := []Booking{
		{ID: 1, Interval: span(t, "09:00", "10:00")},
		{ID: 2, Interval: span(t, "16:00", "17:30")},
	}

	assert.NoError(t, CheckWindowChange(span(t, "09:00", "17:30"), existing))
	assert.NoError(t, CheckWindowChange(span(t, "08:00", "20:00"), existing))
	assert.NoError(t, CheckWindowChange(span(t, "10:00", "11:00"), nil))
	assert.ErrorIs(t, CheckWindowChange(span(t, "09:30", "18:00"), existing), ErrIncompatibleExistingBookings)
	assert.ErrorIs(t, CheckWindowChange(span(t, "09:00", "17:00"), existing), ErrIncompatibleExistingBookings)
}

func TestCheckClosure(t *testing.T) {
	assert.NoError(t, CheckClosure(0))
	assert.ErrorIs(t, CheckClosure(1), ErrExistingBookingsPreventClosure)
}
