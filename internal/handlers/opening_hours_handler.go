package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/httpresp"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

type OpeningHoursHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewOpeningHoursHandler(db *gorm.DB, repo domain.Repository) *OpeningHoursHandler {
	return &OpeningHoursHandler{db: db, repo: repo}
}

type OpeningHoursUpdateRequest struct {
	Days []schedule.DaySchedule `json:"days" binding:"required"`
}

func (h *OpeningHoursHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_opening_hours", "Erro ao buscar horários.")
		return
	}

	httpresp.OK(c, salon.OpeningHours)
}

// Update substitui os 7 dias de uma vez. Sub-ranges com end <= start são
// rejeitados; sobreposição entre sub-ranges não é validada aqui.
func (h *OpeningHoursHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req OpeningHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]bool, 7)
	for _, day := range req.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido.")
			return
		}
		if seen[day.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_weekday", "Dia da semana repetido.")
			return
		}
		seen[day.DayOfWeek] = true

		for _, slot := range day.Slots {
			ok, usable := slot.ParseRange()
			if !ok {
				httperr.BadRequest(c, "invalid_time", "Horário inválido (use HH:MM).")
				return
			}
			if !usable {
				httperr.BadRequest(c, "invalid_range", "Horário final deve ser após o inicial.")
				return
			}
		}
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	salon.OpeningHours = schedule.OpeningHours(req.Days)

	// gravação via gateway: invalida o snapshot usado pela vitrine pública
	if err := h.repo.UpdateSalon(c.Request.Context(), &salon); err != nil {
		httperr.Internal(c, "failed_to_update_opening_hours", "Erro ao salvar horários.")
		return
	}

	c.JSON(http.StatusOK, salon.OpeningHours)
}
