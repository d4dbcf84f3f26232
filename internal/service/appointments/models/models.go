package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос списка активных записей
type ListAppointmentsRequest struct {
	OwnerID   *string    // nil - записи всех клиентов
	StartDate *time.Time // включительно (опционально)
	EndDate   *time.Time // включительно (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		OwnerID:   r.OwnerID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Date        string    `json:"date"` // "2026-03-09"
	Time        string    `json:"time"` // "10:00"
	ServiceKind string    `json:"serviceKind"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// BookedDateResponse занятость одной даты
type BookedDateResponse struct {
	Date           string `json:"date"`
	ScheduledCount int    `json:"scheduledCount"`
	Full           bool   `json:"full"`
}

// BookedDatesResponse даты с активными записями за период
type BookedDatesResponse struct {
	From  string               `json:"from"`
	To    string               `json:"to"`
	Dates []BookedDateResponse `json:"dates"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Date:        a.Date.Format(domain.DateFormat),
		Time:        a.Time.String(),
		ServiceKind: string(a.ServiceKind),
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}

	for _, a := range list {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// FromDomainBookedDates конвертирует занятость дат в DTO
func FromDomainBookedDates(from, to time.Time, dates []domain.BookedDate) *BookedDatesResponse {
	resp := &BookedDatesResponse{
		From:  from.Format(domain.DateFormat),
		To:    to.Format(domain.DateFormat),
		Dates: make([]BookedDateResponse, 0, len(dates)),
	}

	for _, d := range dates {
		resp.Dates = append(resp.Dates, BookedDateResponse{
			Date:           d.Date.Format(domain.DateFormat),
			ScheduledCount: d.Count,
			Full:           d.IsFull(),
		})
	}

	return resp
}
