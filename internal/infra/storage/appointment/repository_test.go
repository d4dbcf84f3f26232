package appointment

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/dbmetrics"
)

var monday = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil), "America/Sao_Paulo"), db, mock
}

func newAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          uuid.MustParse("0190c8a4-0000-7000-8000-000000000001"),
		OwnerID:     "u1",
		Date:        monday,
		Time:        "10:00",
		ServiceKind: domain.ServicePhoto,
		Status:      domain.StatusScheduled,
	}
}

func appointmentRows(a *domain.Appointment) *sqlmock.Rows {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(selectColumns).AddRow(
		a.ID.String(), a.OwnerID, a.Date, string(a.Time), string(a.ServiceKind), nil, string(a.Status), nil, now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	a := newAppointment()
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments (id,owner_id,appointment_date,appointment_time,service_kind,notes,status)")).
		WithArgs(a.ID.String(), "u1", "2026-03-09", "10:00", "photo", nil, "scheduled").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Create(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ClassifiesConstraintViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "pq unique slot",
			err:  &pq.Error{Code: "23505", Constraint: "appointments_scheduled_slot_key"},
			want: ErrSlotTaken,
		},
		{
			name: "pgx unique slot",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "appointments_scheduled_slot_key"},
			want: ErrSlotTaken,
		},
		{
			name: "pq daily capacity",
			err:  &pq.Error{Code: "23514", Constraint: "appointments_daily_capacity"},
			want: ErrDailyCapacityReached,
		},
		{
			name: "pgx daily capacity",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "appointments_daily_capacity"},
			want: ErrDailyCapacityReached,
		},
		{
			name: "closed day",
			err:  &pq.Error{Code: "23514", Constraint: "appointments_closed_day"},
			want: ErrClosedDay,
		},
		{
			name: "business hours",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "appointments_business_hours"},
			want: ErrOutOfHours,
		},
		{
			name: "lead time",
			err:  &pq.Error{Code: "23514", Constraint: "appointments_lead_time"},
			want: ErrLeadTime,
		},
		{
			name: "primary key",
			err:  &pq.Error{Code: "23505", Constraint: "appointments_pkey"},
			want: ErrDuplicateID,
		},
		{
			name: "unknown check constraint",
			err:  &pq.Error{Code: "23514", Constraint: "appointments_service_kind_check"},
			want: ErrExecQuery,
		},
		{
			name: "connection error",
			err:  errors.New("driver: bad connection"),
			want: ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepo(t)
			mock.ExpectQuery("INSERT INTO appointments").WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), newAppointment())

			require.ErrorIs(t, err, tt.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_LockDate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock(hashtext($2))")).
		WithArgs("America/Sao_Paulo", "appointments:2026-03-09").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.LockDate(context.Background(), monday))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows(selectColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListScheduledByDate_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	a := newAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY appointment_time ASC FOR UPDATE")).
		WithArgs("2026-03-09", "scheduled").
		WillReturnRows(appointmentRows(a))
	mock.ExpectCommit()

	tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)

	got, err := repo.ListScheduledByDate(dbmetrics.WithTx(context.Background(), tx), monday)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, a.Time, got[0].Time)
	assert.Equal(t, domain.ServicePhoto, got[0].ServiceKind)
	assert.Nil(t, got[0].Notes)
	assert.Nil(t, got[0].CancelledAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_OrderedByDateThenTime(t *testing.T) {
	repo, _, mock := newRepo(t)
	owner := "u1"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE owner_id = $1 AND status = $2 ORDER BY appointment_date ASC, appointment_time ASC")).
		WithArgs("u1", "scheduled").
		WillReturnRows(appointmentRows(newAppointment()))

	got, err := repo.List(context.Background(), domain.AppointmentsFilter{OwnerID: &owner})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepo(t)
	a := newAppointment()
	a.Status = domain.StatusCancelled

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE appointments SET status = $1, cancelled_at = NOW(), updated_at = NOW() WHERE id = $2 AND owner_id = $3 AND status = $4 RETURNING")).
		WithArgs("cancelled", a.ID.String(), "u1", "scheduled").
		WillReturnRows(appointmentRows(a))

	got, err := repo.Cancel(context.Background(), a.ID, "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NoMatchingRow(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("UPDATE appointments SET status").
		WillReturnRows(sqlmock.NewRows(selectColumns))

	_, err := repo.Cancel(context.Background(), uuid.New(), "u1")

	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountScheduledByDate(t *testing.T) {
	repo, _, mock := newRepo(t)
	tuesday := monday.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY appointment_date ORDER BY appointment_date ASC")).
		WithArgs("scheduled", "2026-03-09", "2026-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_date", "count"}).
			AddRow(monday, 2).
			AddRow(tuesday, 1))

	got, err := repo.CountScheduledByDate(context.Background(), monday, monday.AddDate(0, 0, 6))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsFull())
	assert.Equal(t, tuesday, got[1].Date)
	assert.False(t, got[1].IsFull())
	require.NoError(t, mock.ExpectationsWereMet())
}
