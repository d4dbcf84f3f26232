package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ServiceKind is the kind of capture the client books
type ServiceKind string

const (
	ServiceVideo ServiceKind = "video"
	ServicePhoto ServiceKind = "photo"
	ServiceBoth  ServiceKind = "both"
)

// ServiceKinds lists every accepted service kind
var ServiceKinds = []ServiceKind{ServiceVideo, ServicePhoto, ServiceBoth}

// IsValid reports whether the kind is one of ServiceKinds
func (k ServiceKind) IsValid() bool {
	switch k {
	case ServiceVideo, ServicePhoto, ServiceBoth:
		return true
	}
	return false
}

// Appointment is a reservation of one slot on one calendar day.
// Date, Time, OwnerID and ServiceKind never change after creation.
type Appointment struct {
	ID          uuid.UUID
	OwnerID     string
	Date        time.Time // calendar date, time-of-day is ignored
	Time        types.TimeString
	ServiceKind ServiceKind
	Notes       *string
	Status      AppointmentStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsScheduled returns true while the appointment holds its slot
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled returns true once the appointment released its slot
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the scheduled -> cancelled transition is allowed
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// DateKey is the calendar date in DateFormat, used to group appointments by day
func (a *Appointment) DateKey() string {
	return a.Date.Format(DateFormat)
}

// SameDate compares calendar dates ignoring time-of-day and location
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TruncateDate drops the time-of-day and keeps the calendar date in UTC
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AppointmentsFilter фильтр списка записей
type AppointmentsFilter struct {
	OwnerID          *string    // только записи клиента (nil - все)
	StartDate        *time.Time // включительно
	EndDate          *time.Time // включительно
	IncludeCancelled bool       // по умолчанию только scheduled
}

// BookedDate количество активных записей на дату
type BookedDate struct {
	Date  time.Time
	Count int
}

// IsFull returns true when the daily capacity is exhausted
func (d BookedDate) IsFull() bool {
	return d.Count >= DailyCapacity
}
