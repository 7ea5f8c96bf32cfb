package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RepairBookingService/pkg/psqlbuilder"
)

const (
	table = "appointments"

	// pgExclusionViolation SQLSTATE нарушения EXCLUDE-ограничения
	pgExclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"appointment_date",
	"start_time",
	"end_time",
	"service_id",
	"vehicle_id",
	"owner_id",
	"status",
	"note",
	"created_at",
	"updated_at",
}

// Repository журнал записей на обслуживание.
// Репозиторий не проверяет расписание: это делается до вызова Create/Update.
// Пересечение записей на одну дату дополнительно запрещено ограничением в БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись и заполняет ID, CreatedAt, UpdatedAt
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"appointment_date",
			"start_time",
			"end_time",
			"service_id",
			"vehicle_id",
			"owner_id",
			"status",
			"note",
		).
		Values(
			dateOnly(appointment.AppointmentDate),
			appointment.StartTime,
			appointment.EndTime,
			appointment.ServiceID,
			appointment.VehicleID,
			appointment.OwnerID,
			string(appointment.Status),
			appointment.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create: %w", ErrOverlapConstraint, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// ListByDate возвращает записи на дату, упорядоченные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельная запись
// на ту же дату дождалась завершения текущей проверки.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"appointment_date": dateOnly(date)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListByDate", selectBuilder)
}

// ListByWeekday возвращает все записи, дата которых приходится на день недели
// (0 = воскресенье, как EXTRACT(DOW))
func (r *Repository) ListByWeekday(ctx context.Context, weekday int) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where("EXTRACT(DOW FROM appointment_date) = ?", weekday).
		OrderBy("appointment_date ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListByWeekday", selectBuilder)
}

// CountByWeekday количество записей на день недели
func (r *Repository) CountByWeekday(ctx context.Context, weekday int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where("EXTRACT(DOW FROM appointment_date) = ?", weekday).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByWeekday - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListByOwner возвращает записи пользователя, новые первыми
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("appointment_date DESC", "start_time DESC")

	return r.list(ctx, "ListByOwner", selectBuilder)
}

// Update частично обновляет запись и возвращает её новое состояние.
// Пустое обновление просто возвращает текущую запись.
func (r *Repository) Update(ctx context.Context, id int64, upd domain.AppointmentUpdate) (*domain.Appointment, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if upd.AppointmentDate != nil {
		updateBuilder = updateBuilder.Set("appointment_date", dateOnly(*upd.AppointmentDate))
	}
	if upd.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *upd.EndTime)
	}
	if upd.ServiceID != nil {
		updateBuilder = updateBuilder.Set("service_id", *upd.ServiceID)
	}
	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", string(*upd.Status))
	}
	if upd.Note != nil {
		updateBuilder = updateBuilder.Set("note", *upd.Note)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Update: %w", ErrOverlapConstraint, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return appointment, nil
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
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
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.AppointmentDate,
		&a.StartTime,
		&a.EndTime,
		&a.ServiceID,
		&a.VehicleID,
		&a.OwnerID,
		&status,
		&a.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AppointmentStatus(status)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}

// dateOnly отбрасывает время, чтобы в DATE-колонку не попал сдвиг часового пояса
func dateOnly(t time.Time) string {
	return t.Format(domain.DateFormat)
}
