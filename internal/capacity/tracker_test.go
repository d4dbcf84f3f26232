package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

var monday = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func appt(date time.Time, at string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{Date: date, Time: types.TimeString(at), Status: status, ServiceKind: domain.ServicePhoto}
}

func TestOf_Empty(t *testing.T) {
	s := Of(monday, nil)

	assert.Equal(t, domain.DailyCapacity, s.Remaining())
	assert.False(t, s.SlotTaken("10:00"))
	assert.NoError(t, s.Admit("10:00"))
}

func TestOf_CountsOnlyScheduledOnSameDate(t *testing.T) {
	s := Of(monday, []*domain.Appointment{
		appt(monday, "10:00", domain.StatusScheduled),
		appt(monday, "11:00", domain.StatusCancelled),
		appt(monday.AddDate(0, 0, 1), "12:00", domain.StatusScheduled),
		nil,
	})

	assert.Equal(t, 1, s.Scheduled)
	assert.Equal(t, 1, s.Remaining())
	assert.True(t, s.SlotTaken("10:00"))
	assert.False(t, s.SlotTaken("11:00"))
	assert.False(t, s.SlotTaken("12:00"))
}

func TestAdmit_SlotConflictBelowCapacity(t *testing.T) {
	s := Of(monday, []*domain.Appointment{appt(monday, "10:00", domain.StatusScheduled)})

	assert.ErrorIs(t, s.Admit("10:00"), domain.ErrSlotConflict)
	assert.NoError(t, s.Admit("11:00"))
}

func TestAdmit_CapacityIgnoresServiceKindAndTime(t *testing.T) {
	first := appt(monday, "10:00", domain.StatusScheduled)
	first.ServiceKind = domain.ServiceVideo
	second := appt(monday, "14:00", domain.StatusScheduled)
	second.ServiceKind = domain.ServiceBoth

	s := Of(monday, []*domain.Appointment{first, second})

	assert.Equal(t, 0, s.Remaining())
	for _, slot := range domain.BusinessSlots() {
		if slot == "10:00" || slot == "14:00" {
			assert.ErrorIs(t, s.Admit(slot), domain.ErrSlotConflict, slot)
			continue
		}
		assert.ErrorIs(t, s.Admit(slot), domain.ErrCapacityExceeded, slot)
	}
}

func TestRemaining_NeverNegative(t *testing.T) {
	s := Of(monday, []*domain.Appointment{
		appt(monday, "08:00", domain.StatusScheduled),
		appt(monday, "09:00", domain.StatusScheduled),
		appt(monday, "10:00", domain.StatusScheduled),
	})

	assert.Equal(t, 0, s.Remaining())
}
