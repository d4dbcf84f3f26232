// Package availability decides whether a date and slot may be booked at a given moment.
//
// The rules are checked in a fixed order and the first failing one is reported:
//
//  1. lead time: the slot must start at least 24 hours after now;
//  2. closed day: no service on Thursdays and weekends;
//  3. business hours: the time must be one of the hourly slots between 08:00 and 18:00.
//
// Dates are calendar dates. Slot start moments are built in the business time zone.
package availability

import (
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/capacity"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// Policy pure eligibility rules bound to a business time zone
type Policy struct {
	loc *time.Location
}

// NewPolicy creates a policy for the given zone. nil means UTC.
func NewPolicy(loc *time.Location) *Policy {
	if loc == nil {
		loc = time.UTC
	}
	return &Policy{loc: loc}
}

// Location business time zone
func (p *Policy) Location() *time.Location {
	return p.loc
}

// Evaluate returns nil, domain.ErrLeadTimeViolation, domain.ErrClosedDay or domain.ErrOutOfHours
func (p *Policy) Evaluate(date time.Time, slot types.TimeString, now time.Time) error {
	if p.violatesLeadTime(date, slot, now) {
		return domain.ErrLeadTimeViolation
	}
	if p.IsClosedDay(date) {
		return domain.ErrClosedDay
	}
	if !domain.IsBusinessSlot(slot) {
		return domain.ErrOutOfHours
	}
	return nil
}

func (p *Policy) violatesLeadTime(date time.Time, slot types.TimeString, now time.Time) bool {
	start, err := p.StartOf(date, slot)
	if err != nil {
		// без корректного времени проверяем только дату
		return domain.TruncateDate(date).Before(p.EarliestBookableDate(now))
	}
	return start.Before(now.Add(domain.MinLeadTime))
}

// StartOf start moment of the slot on the date in the business zone
func (p *Policy) StartOf(date time.Time, slot types.TimeString) (time.Time, error) {
	return slot.On(date, p.loc)
}

// IsClosedDay reports Thursdays, Saturdays and Sundays
func (p *Policy) IsClosedDay(date time.Time) bool {
	weekday := domain.TruncateDate(date).Weekday()
	for _, closed := range domain.ClosedWeekdays {
		if weekday == closed {
			return true
		}
	}
	return false
}

// Today calendar date of now in the business zone
func (p *Policy) Today(now time.Time) time.Time {
	return domain.TruncateDate(now.In(p.loc))
}

// EarliestBookableDate first date not rejected by the coarse lead time check (today + 1)
func (p *Policy) EarliestBookableDate(now time.Time) time.Time {
	return p.Today(now).AddDate(0, 0, 1)
}

// Query asks whether time on date can be booked given the scheduled appointments of that date
type Query struct {
	Date     time.Time
	Time     types.TimeString
	Existing []*domain.Appointment
}

// Verdict answer to a Query. Reason is nil when Eligible.
type Verdict struct {
	Eligible bool
	Reason   error
}

// Outcome kind of the verdict, domain.OutcomeCreated when eligible
func (v Verdict) Outcome() domain.Outcome {
	return domain.OutcomeOf(v.Reason)
}

// Check applies the rules and then the capacity of the snapshot
func (p *Policy) Check(q Query, now time.Time) Verdict {
	if err := p.Evaluate(q.Date, q.Time, now); err != nil {
		return Verdict{Reason: err}
	}
	if err := capacity.Of(q.Date, q.Existing).Admit(q.Time); err != nil {
		return Verdict{Reason: err}
	}
	return Verdict{Eligible: true}
}
