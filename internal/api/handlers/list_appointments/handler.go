package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments"
)

const (
	msgInvalidQuery  = "Parâmetros inválidos: owner=me, from e to no formato AAAA-MM-DD"
	msgMissingUserID = "Usuário não autenticado"
	msgLoadFailed    = "Erro ao carregar agendamentos"
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

// Handle GET /api/v1/appointments?owner=me&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := parseQuery(r.URL.Query())
	if err := handlers.ValidateStruct(query); err != nil {
		h.logger.Warn("GET /appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req, err := query.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListScheduled(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidDateRange):
			h.logger.Warn("GET /appointments - Invalid date range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("GET /appointments - Storage unavailable: %v", err)
			handlers.RespondOutcome(w, err)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusInternalServerError, handlers.CodeInternal, msgLoadFailed)
		}
		return
	}

	h.logger.Info("GET /appointments - Listed %d appointments for user=%s, owner=%q",
		len(list.Appointments), userID, query.Owner)
	handlers.RespondJSON(w, http.StatusOK, list)
}
