package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

type outcomeResponse struct {
	status  int
	message string
}

// Тексты для клиента задаются по виду исхода, текст ошибки не используется
var outcomeResponses = map[domain.Outcome]outcomeResponse{
	domain.OutcomeLeadTimeViolation: {
		status:  http.StatusUnprocessableEntity,
		message: "Agendamentos devem ser feitos com pelo menos 24 horas de antecedência",
	},
	domain.OutcomeClosedDay: {
		status:  http.StatusUnprocessableEntity,
		message: "Quintas-feiras e fins de semana não estão disponíveis para agendamento",
	},
	domain.OutcomeOutOfHours: {
		status:  http.StatusUnprocessableEntity,
		message: "Horário fora do expediente. Funcionamento: 8h às 18h, de hora em hora",
	},
	domain.OutcomeSlotConflict: {
		status:  http.StatusConflict,
		message: "Este horário já está reservado. Escolha outro horário.",
	},
	domain.OutcomeCapacityExceeded: {
		status:  http.StatusConflict,
		message: "Limite de 2 captações por dia atingido. Escolha outra data.",
	},
	domain.OutcomeNotFound: {
		status:  http.StatusNotFound,
		message: "Agendamento não encontrado",
	},
	domain.OutcomeStorageUnavailable: {
		status:  http.StatusServiceUnavailable,
		message: "Serviço temporariamente indisponível. Tente novamente.",
	},
}

// RespondOutcome пишет ответ для доменной ошибки.
// Возвращает false, если err не является доменным исходом; тогда ответ не записан.
func RespondOutcome(w http.ResponseWriter, err error) bool {
	outcome := domain.OutcomeOf(err)
	resp, ok := outcomeResponses[outcome]
	if !ok {
		return false
	}
	if outcome == domain.OutcomeStorageUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	RespondError(w, resp.status, string(outcome), resp.message)
	return true
}

// StatusOf HTTP статус доменного исхода, 500 для неизвестных
func StatusOf(err error) int {
	if resp, ok := outcomeResponses[domain.OutcomeOf(err)]; ok {
		return resp.status
	}
	return http.StatusInternalServerError
}
