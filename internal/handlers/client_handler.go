package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/httpresp"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *ClientHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	client := models.Client{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}
