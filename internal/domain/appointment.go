package domain

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusAccepted  AppointmentStatus = "accepted"
	StatusRejected  AppointmentStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Appointment is a reserved repair slot for a vehicle.
// StartTime/EndTime form a half-open interval [start, end) on AppointmentDate.
// Every appointment occupies its interval regardless of status.
type Appointment struct {
	ID              int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	ServiceID       int64
	VehicleID       int64
	OwnerID         int64
	Status          AppointmentStatus
	Note            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the appointment bounds in minutes of day
func (a *Appointment) Interval() (start, end int, err error) {
	start, err = a.StartTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	end, err = a.EndTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// IsOwnedBy returns true if the appointment belongs to the user
func (a *Appointment) IsOwnedBy(userID int64) bool {
	return a.OwnerID == userID
}

// AppointmentUpdate is a partial update. Nil fields are left untouched.
type AppointmentUpdate struct {
	AppointmentDate *time.Time
	StartTime       *types.TimeString
	EndTime         *types.TimeString
	ServiceID       *int64
	Status          *AppointmentStatus
	Note            *string
}

// IsEmpty returns true if no field is set
func (u AppointmentUpdate) IsEmpty() bool {
	return u.AppointmentDate == nil &&
		u.StartTime == nil &&
		u.EndTime == nil &&
		u.ServiceID == nil &&
		u.Status == nil &&
		u.Note == nil
}
