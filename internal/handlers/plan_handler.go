package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER (SUPERADMIN)
////////////////////////////////////////////////////////

type PlanHandler struct {
	db *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

type PlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"required,gte=0"`
	DurationDays int     `json:"duration_days" binding:"required,gt=0"`
	Features     string  `json:"features"`
	Active       *bool   `json:"active"`
}

func (h *PlanHandler) List(c *gin.Context) {
	var plans []models.Plan
	if err := h.db.Order("price ASC").Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Erro ao listar planos.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan := models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     req.Features,
		Active:       true,
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Create(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_create_plan", "Erro ao criar plano.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var plan models.Plan
	if err := h.db.First(&plan, id).Error; err != nil {
		httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan.Name = req.Name
	plan.Price = req.Price
	plan.DurationDays = req.DurationDays
	plan.Features = req.Features
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Save(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_update_plan", "Erro ao atualizar plano.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	res := h.db.Delete(&models.Plan{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_plan", "Erro ao excluir plano.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
		return
	}
	c.Status(http.StatusNoContent)
}
