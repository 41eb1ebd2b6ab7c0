package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salaoflow/salon-scheduler/internal/httperr"
)

// mapBookingErrors translates booking business outcomes to HTTP. A slot
// conflict is a 409 so the client re-runs availability and shows fresh
// choices.
func mapBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Horário indisponível. Escolha outro horário.")
	case httperr.IsBusiness(err, "invalid_range"):
		httperr.BadRequest(c, "invalid_range", "Intervalo de horário inválido.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou horário inválidos.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
	default:
		httperr.Internal(c, "booking_failed", "Erro ao processar o agendamento.")
	}
}
