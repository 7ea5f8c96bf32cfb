package openinghours

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

func TestGetByWeekday(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT weekday, start_time, end_time, updated_at FROM opening_hours WHERE weekday = \$1$`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "start_time", "end_time", "updated_at"}).
			AddRow(int64(1), time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC), time.Now()))

	window, err := repo.GetByWeekday(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, window.Weekday)
	assert.Equal(t, types.TimeString("09:00"), window.StartTime)
	assert.Equal(t, types.TimeString("18:00"), window.EndTime)
}

func TestGetByWeekday_Closed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM opening_hours WHERE weekday = \$1`).
		WithArgs(0).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "start_time", "end_time", "updated_at"}))

	_, err = repo.GetByWeekday(context.Background(), 0)
	assert.ErrorIs(t, err, ErrOpeningHoursNotFound)
}

func TestGetByWeekday_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE weekday = \$1 FOR UPDATE`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "start_time", "end_time", "updated_at"}).
			AddRow(int64(2), "10:00:00", "16:00:00", nil))

	tx, err := db.Begin()
	require.NoError(t, err)

	window, err := repo.GetByWeekday(dbmetrics.WithTx(context.Background(), tx), 2)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), window.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM opening_hours ORDER BY weekday ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "start_time", "end_time", "updated_at"}).
			AddRow(int64(1), "09:00", "18:00", nil).
			AddRow(int64(6), "10:00", "15:00", nil))

	windows, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, 6, windows[1].Weekday)
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO opening_hours \(weekday,start_time,end_time\) VALUES \(\$1,\$2,\$3\) ON CONFLICT \(weekday\) DO UPDATE`).
		WithArgs(3, "08:00", "20:00").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	window, err := repo.Upsert(context.Background(), &domain.OpeningWindow{Weekday: 3, StartTime: "08:00", EndTime: "20:00"})

	require.NoError(t, err)
	assert.Equal(t, now, window.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM opening_hours WHERE weekday = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrOpeningHoursNotFound)
}
