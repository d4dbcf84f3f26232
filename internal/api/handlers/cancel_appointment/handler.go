package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ID de agendamento inválido"
	msgMissingUserID        = "Usuário não autenticado"
	msgCancelFailed         = "Erro ao cancelar agendamento"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), appointmentID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid input: %v", err)
			handlers.RespondUnauthorized(w, msgMissingUserID)

		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not cancelled: id=%s, owner=%s, outcome=%s",
				appointmentID, ownerID, domain.OutcomeOf(err))
			handlers.RespondOutcome(w, err)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: id=%s, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusInternalServerError, handlers.CodeInternal, msgCancelFailed)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: id=%s, owner=%s", appointmentID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, cancelled)
}
