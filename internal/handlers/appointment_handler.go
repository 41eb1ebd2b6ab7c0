package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/httpresp"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
	ucBooking "github.com/salaoflow/salon-scheduler/internal/usecase/booking"
)

type AppointmentHandler struct {
	db *gorm.DB

	createUC     *ucBooking.CreateAppointment
	cancelUC     *ucBooking.CancelAppointment
	statusUC     *ucBooking.UpdateAppointmentStatus
	rescheduleUC *ucBooking.RescheduleAppointment
	listUC       *ucBooking.ListAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateAppointment,
	cancelUC *ucBooking.CancelAppointment,
	statusUC *ucBooking.UpdateAppointmentStatus,
	rescheduleUC *ucBooking.RescheduleAppointment,
	listUC *ucBooking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		createUC:     createUC,
		cancelUC:     cancelUC,
		statusUC:     statusUC,
		rescheduleUC: rescheduleUC,
		listUC:       listUC,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
	Status      string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		SalonID:     salonID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		Status:      domain.Status(req.Status),
		UserID:      &userID,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.DefaultQuery("date", clock.Now().Format("2006-01-02"))
	date, err := clock.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listUC.ByDate(c.Request.Context(), salonID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválidos.")
		return
	}

	out, err := h.listUC.ByMonth(c.Request.Context(), salonID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), salonID, &userID, id)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), salonID, &userID, id, domain.Status(req.Status))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), salonID, &userID, id, req.Date, req.Time)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Delete remove o registro de vez. Cancelamento é mudança de status; esta é
// a ação destrutiva separada.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	result := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.Appointment{})

	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Erro ao excluir agendamento.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, err
	}
	return uint(id), nil
}
