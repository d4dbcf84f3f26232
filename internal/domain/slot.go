package domain

import "github.com/m04kA/SMC-CaptureBooking/pkg/types"

var businessSlots = buildBusinessSlots()

func buildBusinessSlots() []types.TimeString {
	var slots []types.TimeString
	open, errOpen := types.TimeString(OpeningTime).Minutes()
	closing, errClose := types.TimeString(ClosingTime).Minutes()
	if errOpen == nil && errClose == nil && closing > open {
		slots = make([]types.TimeString, 0, (closing-open)/SlotDurationMinutes)
	}
	for t := types.TimeString(OpeningTime); t.IsBefore(ClosingTime); {
		slots = append(slots, t)
		next, err := t.AddMinutes(SlotDurationMinutes)
		if err != nil || !next.IsAfter(t) {
			break
		}
		t = next
	}
	return slots
}

// BusinessSlots returns the bookable slot labels in ascending order (08:00 ... 17:00)
func BusinessSlots() []types.TimeString {
	out := make([]types.TimeString, len(businessSlots))
	copy(out, businessSlots)
	return out
}

// IsBusinessSlot reports whether t is one of BusinessSlots
func IsBusinessSlot(t types.TimeString) bool {
	for _, s := range businessSlots {
		if s == t {
			return true
		}
	}
	return false
}

// DaySlot availability of one slot on one date
type DaySlot struct {
	Time      types.TimeString
	Available bool
	Reason    Outcome // OutcomeCreated when available
}
