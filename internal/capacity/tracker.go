// Package capacity counts scheduled appointments of one calendar date against the daily limit.
// It holds no state between calls and performs no I/O.
package capacity

import (
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// Snapshot occupancy of a date at the moment the appointments were read
type Snapshot struct {
	Date      time.Time
	Capacity  int
	Scheduled int
	taken     map[types.TimeString]struct{}
}

// Of builds a snapshot from existing appointments. Appointments of other dates and
// cancelled ones are ignored, so callers may pass a wider list.
func Of(date time.Time, existing []*domain.Appointment) Snapshot {
	s := Snapshot{
		Date:     domain.TruncateDate(date),
		Capacity: domain.DailyCapacity,
		taken:    make(map[types.TimeString]struct{}, domain.DailyCapacity),
	}

	for _, a := range existing {
		if a == nil || !a.IsScheduled() || !domain.SameDate(a.Date, date) {
			continue
		}
		s.Scheduled++
		s.taken[a.Time] = struct{}{}
	}

	return s
}

// Remaining free units for the date, never negative
func (s Snapshot) Remaining() int {
	if s.Scheduled >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Scheduled
}

// SlotTaken true if a scheduled appointment already holds t
func (s Snapshot) SlotTaken(t types.TimeString) bool {
	_, ok := s.taken[t]
	return ok
}

// Admit decides whether one more appointment at t fits.
// A taken slot is reported before exhausted capacity.
func (s Snapshot) Admit(t types.TimeString) error {
	if s.SlotTaken(t) {
		return domain.ErrSlotConflict
	}
	if s.Remaining() == 0 {
		return domain.ErrCapacityExceeded
	}
	return nil
}
