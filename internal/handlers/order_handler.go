package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new preparing delivered cancelled"`
}

func (h *OrderHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Erro ao listar pedidos.")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status inválido.")
		return
	}

	var order models.Order
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&order).Error; err != nil {
		httperr.NotFound(c, "order_not_found", "Pedido não encontrado.")
		return
	}

	order.Status = req.Status
	if err := h.db.Save(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_update_order", "Erro ao atualizar pedido.")
		return
	}

	c.JSON(http.StatusOK, order)
}
