package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// EventType тип доменного события
type EventType string

const (
	TypeAppointmentCreated   EventType = "appointment.created"
	TypeAppointmentCancelled EventType = "appointment.cancelled"
)

// Event сообщение о смене состояния записи. Ключ сообщения - ID записи,
// поэтому события одной записи попадают в одну партицию по порядку.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	AppointmentID uuid.UUID `json:"appointmentId"`
	OwnerID       string    `json:"ownerId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	ServiceKind   string    `json:"serviceKind"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func newEvent(t EventType, a *domain.Appointment, at time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Type:          t,
		AppointmentID: a.ID,
		OwnerID:       a.OwnerID,
		Date:          a.DateKey(),
		Time:          a.Time.String(),
		ServiceKind:   string(a.ServiceKind),
		Status:        string(a.Status),
		OccurredAt:    at.UTC(),
	}
}
