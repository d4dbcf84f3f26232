package get_booked_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments"
)

const (
	msgInvalidRange = "Período inválido: informe from e to no formato AAAA-MM-DD (máximo 92 dias)"
	msgLoadFailed   = "Erro ao carregar agendamentos"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booked-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, errFrom := time.Parse(domain.DateFormat, query.Get("from"))
	to, errTo := time.Parse(domain.DateFormat, query.Get("to"))
	if err := errors.Join(errFrom, errTo); err != nil {
		h.logger.Warn("GET /booked-dates - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	dates, err := h.service.BookedDates(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidDateRange):
			h.logger.Warn("GET /booked-dates - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("GET /booked-dates - Storage unavailable: %v", err)
			handlers.RespondOutcome(w, err)

		default:
			h.logger.Error("GET /booked-dates - Failed to get booked dates: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, handlers.CodeInternal, msgLoadFailed)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, dates)
}
