package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

const (
	msgInvalidAppointmentID = "ID de agendamento inválido"
	msgMissingUserID        = "Usuário não autenticado"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointment, err := h.service.GetByID(r.Context(), appointmentID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: id=%s, owner=%s", appointmentID, ownerID)
			handlers.RespondOutcome(w, err)

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("GET /appointments/{id} - Storage unavailable: id=%s, error=%v", appointmentID, err)
			handlers.RespondOutcome(w, err)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved: id=%s, owner=%s", appointmentID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
