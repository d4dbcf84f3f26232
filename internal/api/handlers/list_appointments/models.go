package list_appointments

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments/models"
)

const ownerMe = "me"

// ListAppointmentsQuery параметры запроса списка
type ListAppointmentsQuery struct {
	Owner string `validate:"omitempty,oneof=me"`
	From  string `validate:"omitempty,datetime=2006-01-02"`
	To    string `validate:"omitempty,datetime=2006-01-02"`
}

func parseQuery(values url.Values) ListAppointmentsQuery {
	return ListAppointmentsQuery{
		Owner: values.Get("owner"),
		From:  values.Get("from"),
		To:    values.Get("to"),
	}
}

// ToServiceRequest конвертирует параметры в модель сервиса.
// owner=me ограничивает список записями текущего клиента.
func (q ListAppointmentsQuery) ToServiceRequest(userID string) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}

	if q.Owner == ownerMe {
		req.OwnerID = &userID
	}

	if q.From != "" {
		from, err := time.Parse(domain.DateFormat, q.From)
		if err != nil {
			return nil, fmt.Errorf("parse from: %w", err)
		}
		req.StartDate = &from
	}

	if q.To != "" {
		to, err := time.Parse(domain.DateFormat, q.To)
		if err != nil {
			return nil, fmt.Errorf("parse to: %w", err)
		}
		req.EndDate = &to
	}

	return req, nil
}
