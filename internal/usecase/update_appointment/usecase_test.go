package update_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/appointment"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	serviceRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/guard"
	"github.com/m04kA/SMC-RepairBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RepairBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

type ledger struct {
	items map[int64]*domain.Appointment
}

func (l *ledger) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := l.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (l *ledger) Update(_ context.Context, id int64, upd domain.AppointmentUpdate) (*domain.Appointment, error) {
	a, ok := l.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	if upd.AppointmentDate != nil {
		a.AppointmentDate = *upd.AppointmentDate
	}
	if upd.StartTime != nil {
		a.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		a.EndTime = *upd.EndTime
	}
	if upd.ServiceID != nil {
		a.ServiceID = *upd.ServiceID
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.Note != nil {
		a.Note = upd.Note
	}
	cp := *a
	return &cp, nil
}

func (l *ledger) ListByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range l.items {
		if a.AppointmentDate.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (l *ledger) ListByWeekday(context.Context, int) ([]*domain.Appointment, error) { return nil, nil }
func (l *ledger) CountByWeekday(context.Context, int) (int, error)                  { return 0, nil }

type fakeOpeningHours struct{}

func (fakeOpeningHours) GetByWeekday(_ context.Context, weekday int) (*domain.OpeningWindow, error) {
	if weekday >= 1 && weekday <= 5 {
		return &domain.OpeningWindow{Weekday: weekday, StartTime: "09:00", EndTime: "17:00"}, nil
	}
	return nil, openingHoursRepo.ErrOpeningHoursNotFound
}

type fakeServices struct{}

func (fakeServices) GetDuration(_ context.Context, id int64) (int, error) {
	switch id {
	case 1:
		return 60, nil
	case 2:
		return 120, nil
	}
	return 0, serviceRepo.ErrServiceNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingLocker struct {
	dates []time.Time
}

func (l *recordingLocker) WithDateLocks(ctx context.Context, dates []time.Time, fn func(ctx context.Context) error) error {
	l.dates = dates
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday  = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
	staff   = domain.Caller{UserID: 1, Role: domain.RoleStaff}
	owner   = domain.Caller{UserID: 100, Role: domain.RoleCustomer}
)

func newFixture() (*UseCase, *ledger, *recordingLocker) {
	l := &ledger{items: map[int64]*domain.Appointment{
		1: {ID: 1, AppointmentDate: monday, StartTime: "10:00", EndTime: "11:00", ServiceID: 1, OwnerID: 100, Status: domain.StatusRequested},
		2: {ID: 2, AppointmentDate: monday, StartTime: "13:00", EndTime: "14:00", ServiceID: 1, OwnerID: 200, Status: domain.StatusAccepted},
	}}
	locker := &recordingLocker{}
	g := guard.NewGuard(l, fakeOpeningHours{}, nil, nopLogger{})
	uc := NewUseCase(l, fakeServices{}, g, fakeTxManager{}, locker, nil, nopLogger{})
	return uc, l, locker
}

func TestExecute_RescheduleOverlappingItself(t *testing.T) {
	uc, l, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(types.TimeString("10:30")),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	assert.Equal(t, types.TimeString("10:30"), l.items[1].StartTime)
}

func TestExecute_RescheduleConflict(t *testing.T) {
	uc, l, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(types.TimeString("12:30")),
	})

	assert.ErrorIs(t, err, scheduling.ErrOverlap)
	assert.Equal(t, types.TimeString("10:00"), l.items[1].StartTime)
}

func TestExecute_ChangeServiceRecomputesEnd(t *testing.T) {
	uc, _, _ := newFixture()

	// 10:00 + 120 мин = 12:00, до записи в 13:00
	resp, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		ServiceID:     ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)

	_, err = uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		ServiceID:     ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_MoveToAnotherDate(t *testing.T) {
	uc, l, locker := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 2,
		Date:          ptr.Ptr(tuesday),
	})

	require.NoError(t, err)
	assert.True(t, resp.AppointmentDate.Equal(tuesday))
	assert.True(t, l.items[2].AppointmentDate.Equal(tuesday))
	assert.ElementsMatch(t, []time.Time{monday, tuesday}, locker.dates)

	// воскресенье - выходной
	_, err = uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 2,
		Date:          ptr.Ptr(monday.AddDate(0, 0, -1)),
	})
	assert.ErrorIs(t, err, scheduling.ErrOutsideOpeningHours)
}

func TestExecute_StatusAndNote(t *testing.T) {
	uc, l, locker := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		Status:        ptr.Ptr(domain.StatusAccepted),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.Nil(t, locker.dates)

	_, err = uc.Execute(context.Background(), &Request{
		Caller:        owner,
		AppointmentID: 1,
		Note:          ptr.Ptr("бампер тоже посмотрите"),
	})
	require.NoError(t, err)
	assert.Equal(t, "бампер тоже посмотрите", *l.items[1].Note)
}

func TestExecute_AccessRules(t *testing.T) {
	uc, _, _ := newFixture()

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "owner reschedules", req: &Request{Caller: owner, AppointmentID: 1, StartTime: ptr.Ptr(types.TimeString("15:00"))}},
		{name: "owner changes status", req: &Request{Caller: owner, AppointmentID: 1, Status: ptr.Ptr(domain.StatusAccepted)}},
		{name: "stranger edits note", req: &Request{Caller: owner, AppointmentID: 2, Note: ptr.Ptr("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrAccessDenied)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{Caller: staff, AppointmentID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Caller: staff, AppointmentID: 1, Status: ptr.Ptr(domain.AppointmentStatus("done"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Caller: staff, AppointmentID: 42, Note: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

type busyLocker struct{}

func (busyLocker) WithDateLocks(context.Context, []time.Time, func(ctx context.Context) error) error {
	return lock.ErrLockNotAcquired
}

func TestExecute_ScheduleBusy(t *testing.T) {
	uc, _, _ := newFixture()
	uc.locker = busyLocker{}

	_, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(types.TimeString("15:00")),
	})
	assert.ErrorIs(t, err, ErrScheduleBusy)
}

type conflictingTxManager struct{}

// Перечитывание записи под FOR UPDATE проиграло конкурентной транзакции
func (conflictingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	readErr := fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, fmt.Errorf("pq: could not serialize access"))
	return fmt.Errorf("%w: %w", txmanager.ErrSerialization, readErr)
}

func TestExecute_SerializationFailureIsRetryable(t *testing.T) {
	uc, l, _ := newFixture()
	uc.txManager = conflictingTxManager{}

	_, err := uc.Execute(context.Background(), &Request{
		Caller:        staff,
		AppointmentID: 1,
		StartTime:     ptr.Ptr(types.TimeString("15:00")),
	})

	assert.ErrorIs(t, err, ErrScheduleBusy)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, types.TimeString("10:00"), l.items[1].StartTime)
}
