package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDuration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT duration_minutes FROM services WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"duration_minutes"}).AddRow(45))
	mock.ExpectQuery(`SELECT duration_minutes FROM services WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"duration_minutes"}))

	d, err := repo.GetDuration(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 45, d)

	_, err = repo.GetDuration(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, name, duration_minutes, price, created_at, updated_at FROM services WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes", "price", "created_at", "updated_at"}).
			AddRow(int64(1), "Замена масла", 30, 2500.0, nil, nil))

	svc, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Замена масла", svc.Name)
	assert.Equal(t, 30, svc.DurationMinutes)
	assert.Equal(t, 2500.0, svc.Price)
}

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM services ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes", "price", "created_at", "updated_at"}).
			AddRow(int64(2), "Диагностика", 60, 1800.0, nil, nil).
			AddRow(int64(1), "Шиномонтаж", 45, 3200.0, nil, nil))

	list, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
}
