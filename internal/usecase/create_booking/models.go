package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	OwnerID     string             // ID клиента из X-User-ID
	Date        time.Time          // Дата (без времени)
	Time        types.TimeString   // Слот, например "10:00"
	ServiceKind domain.ServiceKind // video, photo или both
	Notes       *string            // Комментарий (опционально)
}

// Response созданная запись
type Response struct {
	ID          uuid.UUID
	OwnerID     string
	Date        time.Time
	Time        types.TimeString
	ServiceKind domain.ServiceKind
	Notes       *string
	Status      domain.AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Date:        a.Date,
		Time:        a.Time,
		ServiceKind: a.ServiceKind,
		Notes:       a.Notes,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
