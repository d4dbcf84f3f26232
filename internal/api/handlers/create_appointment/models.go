package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CaptureBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"` // "2026-03-09"
	Time        string  `json:"time" validate:"required,max=16"`              // "10:00"
	ServiceKind string  `json:"serviceKind" validate:"required,service_kind"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ServiceKind string    `json:"serviceKind"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Время не разбирается: некорректное значение отклоняется правилами как вне рабочего времени.
func (r *CreateAppointmentRequest) ToUseCaseRequest(ownerID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		OwnerID:     ownerID,
		Date:        date,
		Time:        types.TimeString(r.Time),
		ServiceKind: domain.ServiceKind(r.ServiceKind),
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		OwnerID:     resp.OwnerID,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time.String(),
		ServiceKind: string(resp.ServiceKind),
		Notes:       resp.Notes,
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
