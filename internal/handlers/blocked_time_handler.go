package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	"github.com/salaoflow/salon-scheduler/internal/clock"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

type BlockedTimeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBlockedTimeHandler(db *gorm.DB, audit *audit.Dispatcher) *BlockedTimeHandler {
	return &BlockedTimeHandler{db: db, audit: audit}
}

type CreateBlockedTimeRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndTime   string `json:"end_time" binding:"required"`   // HH:mm
	Reason    string `json:"reason"`
}

func (h *BlockedTimeHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)

	if from := c.Query("from"); from != "" {
		fromDate, err := clock.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("start_time >= ?", fromDate)
	}

	var blocks []models.BlockedTime
	if err := q.Order("start_time ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_times", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *BlockedTimeHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := clock.ParseDateTime(req.Date, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou horário inválidos.")
		return
	}

	end, err := clock.ParseDateTime(req.Date, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou horário inválidos.")
		return
	}

	if !end.After(start) {
		httperr.BadRequest(c, "invalid_range", "Horário final deve ser após o inicial.")
		return
	}

	block := models.BlockedTime{
		SalonID:   salonID,
		StartTime: start,
		EndTime:   end,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_blocked_time", "Erro ao criar bloqueio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "blocked_time_created",
		Entity:   "blocked_time",
		EntityID: &block.ID,
	})

	c.JSON(http.StatusCreated, block)
}

func (h *BlockedTimeHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	result := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.BlockedTime{})

	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_blocked_time", "Erro ao remover bloqueio.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "blocked_time_not_found", "Bloqueio não encontrado.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "blocked_time_deleted",
		Entity:   "blocked_time",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
