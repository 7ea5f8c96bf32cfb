package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RepairBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

type fakeAppointments struct {
	byDate    []*domain.Appointment
	byWeekday []*domain.Appointment
	count     int
	err       error
}

func (f *fakeAppointments) ListByDate(context.Context, time.Time) ([]*domain.Appointment, error) {
	return f.byDate, f.err
}

func (f *fakeAppointments) ListByWeekday(context.Context, int) ([]*domain.Appointment, error) {
	return f.byWeekday, f.err
}

func (f *fakeAppointments) CountByWeekday(context.Context, int) (int, error) {
	return f.count, f.err
}

type fakeOpeningHours struct {
	window *domain.OpeningWindow
	err    error
}

func (f *fakeOpeningHours) GetByWeekday(context.Context, int) (*domain.OpeningWindow, error) {
	if f.window == nil && f.err == nil {
		return nil, openingHoursRepo.ErrOpeningHoursNotFound
	}
	return f.window, f.err
}

type fakeMetrics struct {
	reasons []string
}

func (f *fakeMetrics) IncGuardRejection(reason string) {
	if f == nil {
		return
	}
	f.reasons = append(f.reasons, reason)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-10-13 понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func mondayWindow() *domain.OpeningWindow {
	return &domain.OpeningWindow{Weekday: 1, StartTime: "09:00", EndTime: "18:00"}
}

func appointmentAt(id int64, start, end string) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		AppointmentDate: monday,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		Status:          domain.StatusAccepted,
	}
}

func newGuard(apps *fakeAppointments, hours *fakeOpeningHours, m *fakeMetrics) *Guard {
	return NewGuard(apps, hours, m, nopLogger{})
}

func TestValidateCreate(t *testing.T) {
	booked := []*domain.Appointment{appointmentAt(7, "09:00", "10:00")}

	tests := []struct {
		name      string
		start     string
		end       string
		excludeID *int64
		window    *domain.OpeningWindow
		wantErr   error
		reason    string
	}{
		{name: "free gap", start: "10:00", end: "11:00", window: mondayWindow()},
		{name: "touching end is allowed", start: "17:00", end: "18:00", window: mondayWindow()},
		{name: "overlap", start: "09:30", end: "10:30", window: mondayWindow(), wantErr: scheduling.ErrOverlap, reason: "overlap"},
		{name: "self is excluded", start: "09:30", end: "10:30", window: mondayWindow(), excludeID: ptr.Ptr(int64(7))},
		{name: "past closing", start: "17:30", end: "18:30", window: mondayWindow(), wantErr: scheduling.ErrOutsideOpeningHours, reason: "outside_opening_hours"},
		{name: "closed day", start: "10:00", end: "11:00", wantErr: scheduling.ErrOutsideOpeningHours, reason: "outside_opening_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMetrics{}
			g := newGuard(&fakeAppointments{byDate: booked}, &fakeOpeningHours{window: tt.window}, m)

			err := g.ValidateCreate(context.Background(), monday, types.TimeString(tt.start), types.TimeString(tt.end), tt.excludeID)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Empty(t, m.reasons)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{tt.reason}, m.reasons)
		})
	}
}

func TestValidateCreate_StorageError(t *testing.T) {
	g := newGuard(&fakeAppointments{err: errors.New("db down")}, &fakeOpeningHours{window: mondayWindow()}, nil)

	err := g.ValidateCreate(context.Background(), monday, "10:00", "11:00", nil)
	assert.ErrorIs(t, err, ErrInternal)

	g = newGuard(&fakeAppointments{}, &fakeOpeningHours{err: errors.New("db down")}, nil)
	err = g.ValidateCreate(context.Background(), monday, "10:00", "11:00", nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestValidateCreate_InvalidTime(t *testing.T) {
	g := newGuard(&fakeAppointments{}, &fakeOpeningHours{window: mondayWindow()}, nil)

	err := g.ValidateCreate(context.Background(), monday, "9am", "11:00", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateWindowChange(t *testing.T) {
	existing := []*domain.Appointment{appointmentAt(1, "09:00", "10:00"), appointmentAt(2, "16:00", "17:30")}

	t.Run("all bookings fit", func(t *testing.T) {
		g := newGuard(&fakeAppointments{byWeekday: existing}, &fakeOpeningHours{}, nil)
		assert.NoError(t, g.ValidateWindowChange(context.Background(), 1, "08:00", "17:30"))
	})

	t.Run("booking left outside", func(t *testing.T) {
		m := &fakeMetrics{}
		g := newGuard(&fakeAppointments{byWeekday: existing}, &fakeOpeningHours{}, m)

		err := g.ValidateWindowChange(context.Background(), 1, "10:00", "18:00")
		assert.ErrorIs(t, err, scheduling.ErrIncompatibleExistingBookings)
		assert.Equal(t, []string{"incompatible_existing_bookings"}, m.reasons)
	})

	t.Run("invalid weekday", func(t *testing.T) {
		g := newGuard(&fakeAppointments{}, &fakeOpeningHours{}, nil)
		assert.ErrorIs(t, g.ValidateWindowChange(context.Background(), 7, "09:00", "18:00"), scheduling.ErrInvalidWeekday)
	})

	t.Run("empty range", func(t *testing.T) {
		g := newGuard(&fakeAppointments{}, &fakeOpeningHours{}, nil)
		assert.ErrorIs(t, g.ValidateWindowChange(context.Background(), 1, "18:00", "18:00"), scheduling.ErrInvalidRange)
	})
}

func TestValidateClosure(t *testing.T) {
	g := newGuard(&fakeAppointments{count: 0}, &fakeOpeningHours{}, nil)
	assert.NoError(t, g.ValidateClosure(context.Background(), 0))

	m := &fakeMetrics{}
	g = newGuard(&fakeAppointments{count: 3}, &fakeOpeningHours{}, m)
	assert.ErrorIs(t, g.ValidateClosure(context.Background(), 0), scheduling.ErrExistingBookingsPreventClosure)
	assert.Equal(t, []string{"existing_bookings_prevent_closure"}, m.reasons)

	assert.ErrorIs(t, g.ValidateClosure(context.Background(), -1), scheduling.ErrInvalidWeekday)
}
