package domain

import "errors"

// Booking outcomes. Every rejection the core can produce is one of these;
// callers match them with errors.Is and never look at the message text.
var (
	// ErrLeadTimeViolation the slot starts less than MinLeadTime from now
	ErrLeadTimeViolation = errors.New("booking: appointment must be made at least 24 hours in advance")

	// ErrClosedDay the date falls on Thursday or a weekend
	ErrClosedDay = errors.New("booking: no service on this weekday")

	// ErrOutOfHours the time is not one of BusinessSlots
	ErrOutOfHours = errors.New("booking: time is outside business hours")

	// ErrSlotConflict another scheduled appointment holds the same date and time
	ErrSlotConflict = errors.New("booking: slot is already taken")

	// ErrCapacityExceeded the date already has DailyCapacity scheduled appointments
	ErrCapacityExceeded = errors.New("booking: daily capacity reached")

	// ErrNotFound the appointment does not exist, belongs to someone else or is not scheduled
	ErrNotFound = errors.New("booking: appointment not found")

	// ErrStorageUnavailable the ledger could not be reached; safe to retry
	ErrStorageUnavailable = errors.New("booking: storage unavailable")
)

// Outcome stable machine-readable kind of a booking result
type Outcome string

const (
	OutcomeCreated            Outcome = "created"
	OutcomeCancelled          Outcome = "cancelled"
	OutcomeLeadTimeViolation  Outcome = "lead_time_violation"
	OutcomeClosedDay          Outcome = "closed_day"
	OutcomeOutOfHours         Outcome = "out_of_hours"
	OutcomeSlotConflict       Outcome = "slot_conflict"
	OutcomeCapacityExceeded   Outcome = "capacity_exceeded"
	OutcomeNotFound           Outcome = "not_found"
	OutcomeStorageUnavailable Outcome = "storage_unavailable"
	OutcomeInvalidInput       Outcome = "invalid_input"
	OutcomeUnknown            Outcome = "unknown"
)

var outcomeByErr = []struct {
	err     error
	outcome Outcome
}{
	{ErrLeadTimeViolation, OutcomeLeadTimeViolation},
	{ErrClosedDay, OutcomeClosedDay},
	{ErrOutOfHours, OutcomeOutOfHours},
	{ErrSlotConflict, OutcomeSlotConflict},
	{ErrCapacityExceeded, OutcomeCapacityExceeded},
	{ErrNotFound, OutcomeNotFound},
	{ErrStorageUnavailable, OutcomeStorageUnavailable},
}

// OutcomeOf maps an error to its outcome kind. nil maps to OutcomeCreated.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeCreated
	}
	for _, m := range outcomeByErr {
		if errors.Is(err, m.err) {
			return m.outcome
		}
	}
	return OutcomeUnknown
}

// IsRetryable only storage failures may succeed on an identical retry
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
