package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CaptureBooking/pkg/psqlbuilder"
)

const tableName = "appointments"

var selectColumns = []string{
	"id",
	"owner_id",
	"appointment_date",
	"appointment_time",
	"service_kind",
	"notes",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей в PostgreSQL
type Repository struct {
	db       DBExecutor
	timezone string
}

// NewRepository создает новый экземпляр репозитория записей.
// timezone передается триггеру appointments_guard для проверки 24 часов.
func NewRepository(db DBExecutor, timezone string) *Repository {
	return &Repository{db: db, timezone: timezone}
}

// DateLockKey ключ advisory lock для даты. Тот же ключ берет триггер appointments_guard.
func DateLockKey(date time.Time) string {
	return "appointments:" + date.Format(domain.DateFormat)
}

// LockDate берет транзакционную advisory блокировку на дату и выставляет часовой пояс бизнеса для триггера.
// Вне транзакции блокировка снимается сразу после запроса, поэтому вызывать внутри TransactionManager.
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	_, err := executor.ExecContext(ctx,
		"SELECT set_config('app.business_timezone', $1, true), pg_advisory_xact_lock(hashtext($2))",
		r.timezone, DateLockKey(date),
	)
	if err != nil {
		return fmt.Errorf("%w: LockDate - advisory lock: %v", ErrExecQuery, err)
	}

	return nil
}

// Create вставляет новую запись в статусе scheduled.
// Ограничения БД (уникальный слот, лимит на день, рабочие часы) проверяются в любом случае,
// их нарушения возвращаются как ErrSlotTaken, ErrDailyCapacityReached и т.д.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"owner_id",
			"appointment_date",
			"appointment_time",
			"service_kind",
			"notes",
			"status",
		).
		Values(
			a.ID,
			a.OwnerID,
			a.Date.Format(domain.DateFormat),
			a.Time,
			a.ServiceKind,
			a.Notes,
			a.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if rejected := classifyWriteError(err); rejected != nil {
			return nil, rejected
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ListScheduledByDate активные записи на дату, по времени.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"appointment_date": date.Format(domain.DateFormat),
			"status":           domain.StatusScheduled,
		}).
		OrderBy("appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List записи по фильтру, по дате и времени (ASC)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).From(tableName)

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusScheduled})
	}

	query, args, err := selectBuilder.
		OrderBy("appointment_date ASC", "appointment_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Cancel переводит запись клиента из scheduled в cancelled одним UPDATE.
// Если запись не найдена, принадлежит другому клиенту или уже отменена - ErrAppointmentNotFound.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":       id,
			"owner_id": ownerID,
			"status":   domain.StatusScheduled,
		}).
		Suffix("RETURNING " + strings.Join(selectColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if rejected := classifyWriteError(err); rejected != nil {
			return nil, rejected
		}
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return a, nil
}

// CountScheduledByDate количество активных записей по датам в диапазоне [from, to]
func (r *Repository) CountScheduledByDate(ctx context.Context, from, to time.Time) ([]domain.BookedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("appointment_date", "COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.GtOrEq{"appointment_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"appointment_date": to.Format(domain.DateFormat)}).
		GroupBy("appointment_date").
		OrderBy("appointment_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountScheduledByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountScheduledByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.BookedDate, 0)
	for rows.Next() {
		var d domain.BookedDate
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("%w: CountScheduledByDate - scan row: %v", ErrScanRow, err)
		}
		d.Date = domain.TruncateDate(d.Date)
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountScheduledByDate - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Date,
		&a.Time,
		&a.ServiceKind,
		&a.Notes,
		&a.Status,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Date = domain.TruncateDate(a.Date)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
