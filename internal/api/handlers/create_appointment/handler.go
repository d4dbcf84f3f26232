package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CaptureBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Corpo da requisição inválido"
	msgMissingFields      = "Preencha todos os campos obrigatórios"
	msgInvalidDate        = "Data inválida, formato esperado AAAA-MM-DD"
	msgMissingUserID      = "Usuário não autenticado"
	msgCreateFailed       = "Erro ao criar agendamento"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /appointments - Validation failed: owner=%s, %v", ownerID, err)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: owner=%s, %v", ownerID, err)
			handlers.RespondBadRequest(w, msgMissingFields)

		case domain.OutcomeOf(err) != domain.OutcomeUnknown:
			h.logger.Warn("POST /appointments - Rejected: owner=%s, date=%s, time=%s, outcome=%s",
				ownerID, req.Date, req.Time, domain.OutcomeOf(err))
			handlers.RespondOutcome(w, err)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: owner=%s, error=%v", ownerID, err)
			handlers.RespondError(w, http.StatusInternalServerError, handlers.CodeInternal, msgCreateFailed)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, owner=%s, date=%s, time=%s",
		result.ID, ownerID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
