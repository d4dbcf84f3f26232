package get_day_availability

import (
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	getDayAvailability "github.com/m04kA/SMC-CaptureBooking/internal/usecase/get_day_availability"
)

// SlotResponse доступность одного слота. Reason пустой, если слот свободен.
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	Date      string         `json:"date"`
	Closed    bool           `json:"closed"`
	Capacity  int            `json:"capacity"`
	Scheduled int            `json:"scheduled"`
	Remaining int            `json:"remaining"`
	Full      bool           `json:"full"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *DayAvailabilityResponse {
	out := &DayAvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Closed:    resp.Closed,
		Capacity:  resp.Capacity,
		Scheduled: resp.Scheduled,
		Remaining: resp.Remaining,
		Full:      resp.Remaining == 0,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		slot := SlotResponse{Time: s.Time.String(), Available: s.Available}
		if !s.Available {
			slot.Reason = string(s.Reason)
		}
		out.Slots = append(out.Slots, slot)
	}

	return out
}
