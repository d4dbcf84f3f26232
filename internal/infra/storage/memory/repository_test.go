package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CaptureBooking/internal/availability"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CaptureBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

var (
	brt    = time.FixedZone("BRT", -3*60*60)
	monday = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2026, time.March, 2, 12, 0, 0, 0, brt)
)

func newRepo() *Repository {
	return NewRepository(availability.NewPolicy(brt), func() time.Time { return now })
}

func newAppointment(owner string, date time.Time, at types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:          uuid.New(),
		OwnerID:     owner,
		Date:        date,
		Time:        at,
		ServiceKind: domain.ServiceVideo,
		Status:      domain.StatusScheduled,
	}
}

func TestRepository_CreateEnforcesConstraints(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	_, err := repo.Create(ctx, newAppointment("u1", monday, "10:00"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAppointment("u2", monday, "10:00"))
	assert.ErrorIs(t, err, appointmentRepo.ErrSlotTaken)

	_, err = repo.Create(ctx, newAppointment("u2", monday, "14:00"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAppointment("u3", monday, "16:00"))
	assert.ErrorIs(t, err, appointmentRepo.ErrDailyCapacityReached)

	_, err = repo.Create(ctx, newAppointment("u3", monday.AddDate(0, 0, 3), "10:00"))
	assert.ErrorIs(t, err, appointmentRepo.ErrClosedDay)

	_, err = repo.Create(ctx, newAppointment("u3", monday.AddDate(0, 0, 1), "18:00"))
	assert.ErrorIs(t, err, appointmentRepo.ErrOutOfHours)

	_, err = repo.Create(ctx, newAppointment("u3", monday.AddDate(0, 0, -7), "10:00"))
	assert.ErrorIs(t, err, appointmentRepo.ErrLeadTime)

	cancelled := newAppointment("u3", monday.AddDate(0, 0, 1), "10:00")
	cancelled.Status = domain.StatusCancelled
	_, err = repo.Create(ctx, cancelled)
	assert.ErrorIs(t, err, appointmentRepo.ErrForbiddenChange)
}

func TestRepository_CancelIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	a, err := repo.Create(ctx, newAppointment("u1", monday, "10:00"))
	require.NoError(t, err)

	_, err = repo.Cancel(ctx, a.ID, "someone-else")
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)

	cancelled, err := repo.Cancel(ctx, a.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = repo.Cancel(ctx, a.ID, "u1")
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)

	// слот снова свободен
	_, err = repo.Create(ctx, newAppointment("u2", monday, "10:00"))
	assert.NoError(t, err)
}

func TestRepository_ConcurrentCancelSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	a, err := repo.Create(ctx, newAppointment("u1", monday, "10:00"))
	require.NoError(t, err)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Cancel(ctx, a.ID, "u1"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestRepository_ListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	tuesday := monday.AddDate(0, 0, 1)

	for _, a := range []*domain.Appointment{
		newAppointment("u1", tuesday, "09:00"),
		newAppointment("u2", monday, "15:00"),
		newAppointment("u1", monday, "08:00"),
	} {
		_, err := repo.Create(ctx, a)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.AppointmentsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, types.TimeString("08:00"), all[0].Time)
	assert.Equal(t, types.TimeString("15:00"), all[1].Time)
	assert.Equal(t, tuesday, all[2].Date)

	owner := "u1"
	mine, err := repo.List(ctx, domain.AppointmentsFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	booked, err := repo.CountScheduledByDate(ctx, monday, tuesday)
	require.NoError(t, err)
	require.Len(t, booked, 2)
	assert.Equal(t, domain.BookedDate{Date: monday, Count: 2}, booked[0])
	assert.Equal(t, domain.BookedDate{Date: tuesday, Count: 1}, booked[1])
}

func TestRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	a, err := repo.Create(ctx, newAppointment("u1", monday, "10:00"))
	require.NoError(t, err)
	a.Status = domain.StatusCancelled

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, stored.Status)
}
