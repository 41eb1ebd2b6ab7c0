package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/entitlement"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

type SalonHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewSalonHandler(db *gorm.DB, repo domain.Repository) *SalonHandler {
	return &SalonHandler{db: db, repo: repo}
}

type UpdateSalonRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (h *SalonHandler) GetMySalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	now := clock.Now()
	c.JSON(http.StatusOK, gin.H{
		"salon":        salon,
		"subscription": entitlement.Describe(&salon, now),
		"entitlement":  entitlement.Evaluate(&salon, now),
	})
}

func (h *SalonHandler) UpdateMySalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}

	// gravação via gateway: invalida o snapshot usado pela vitrine pública
	if err := h.repo.UpdateSalon(c.Request.Context(), &salon); err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao salvar as configurações do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
