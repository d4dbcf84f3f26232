package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

func TestBusinessSlots(t *testing.T) {
	slots := BusinessSlots()

	assert.Len(t, slots, 10)
	assert.Equal(t, types.TimeString("08:00"), slots[0])
	assert.Equal(t, types.TimeString("17:00"), slots[len(slots)-1])

	assert.True(t, IsBusinessSlot("12:00"))
	assert.False(t, IsBusinessSlot("18:00"))
	assert.False(t, IsBusinessSlot("07:00"))
	assert.False(t, IsBusinessSlot("08:30"))
}

func TestBusinessSlots_FollowBusinessHours(t *testing.T) {
	open, err := types.TimeString(OpeningTime).Minutes()
	require.NoError(t, err)
	closing, err := types.TimeString(ClosingTime).Minutes()
	require.NoError(t, err)

	slots := BusinessSlots()
	require.Len(t, slots, (closing-open)/SlotDurationMinutes)

	for i, slot := range slots {
		minutes, err := slot.Minutes()
		require.NoError(t, err)
		assert.Equal(t, open+i*SlotDurationMinutes, minutes, slot)
	}

	last, err := slots[len(slots)-1].AddMinutes(SlotDurationMinutes)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString(ClosingTime), last)
}

func TestOutcomeOf(t *testing.T) {
	wrapped := fmt.Errorf("%w: TryCreate - insert: %v", ErrSlotConflict, errors.New("duplicate key"))

	assert.Equal(t, OutcomeCreated, OutcomeOf(nil))
	assert.Equal(t, OutcomeSlotConflict, OutcomeOf(wrapped))
	assert.Equal(t, OutcomeCapacityExceeded, OutcomeOf(ErrCapacityExceeded))
	assert.Equal(t, OutcomeUnknown, OutcomeOf(errors.New("something else")))

	assert.True(t, IsRetryable(fmt.Errorf("%w: begin", ErrStorageUnavailable)))
	assert.False(t, IsRetryable(ErrCapacityExceeded))
}

func TestAppointmentTransitions(t *testing.T) {
	a := &Appointment{Status: StatusScheduled}
	assert.True(t, a.CanBeCancelled())

	a.Status = StatusCancelled
	assert.False(t, a.CanBeCancelled())
	assert.True(t, a.IsCancelled())
}

func TestBookedDate_IsFull(t *testing.T) {
	assert.False(t, BookedDate{Count: 1}.IsFull())
	assert.True(t, BookedDate{Count: 2}.IsFull())
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 9, 1, 0, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, b.AddDate(0, 0, 1)))
}
