package openinghours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RepairBookingService/pkg/psqlbuilder"
)

const table = "opening_hours"

// Repository рабочие часы мастерской по дням недели
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday возвращает окно для дня недели или ErrOpeningHoursNotFound, если день выходной.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByWeekday(ctx context.Context, weekday int) (*domain.OpeningWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("weekday", "start_time", "end_time", "updated_at").
		From(table).
		Where(squirrel.Eq{"weekday": weekday})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var (
		window    domain.OpeningWindow
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.Weekday,
		&window.StartTime,
		&window.EndTime,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOpeningHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan opening hours: %w", ErrScanRow, err)
	}

	window.UpdatedAt = updatedAt.Time
	return &window, nil
}

// GetAll возвращает все рабочие окна, упорядоченные по дню недели
func (r *Repository) GetAll(ctx context.Context) ([]*domain.OpeningWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "start_time", "end_time", "updated_at").
		From(table).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.OpeningWindow, 0, 7)
	for rows.Next() {
		var (
			window    domain.OpeningWindow
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&window.Weekday, &window.StartTime, &window.EndTime, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}
		window.UpdatedAt = updatedAt.Time
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return windows, nil
}

// Upsert создает или заменяет окно для дня недели
func (r *Repository) Upsert(ctx context.Context, window *domain.OpeningWindow) (*domain.OpeningWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("weekday", "start_time", "end_time").
		Values(window.Weekday, window.StartTime, window.EndTime).
		Suffix("ON CONFLICT (weekday) DO UPDATE SET start_time = EXCLUDED.start_time, " +
			"end_time = EXCLUDED.end_time, updated_at = NOW() RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	window.UpdatedAt = updatedAt.Time
	return window, nil
}

// Delete удаляет окно (день становится выходным)
func (r *Repository) Delete(ctx context.Context, weekday int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"weekday": weekday}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOpeningHoursNotFound
	}

	return nil
}
