package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/entitlement"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER (SUPERADMIN)
////////////////////////////////////////////////////////

type AdminTenantHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdminTenantHandler(db *gorm.DB, repo domain.Repository, audit *audit.Dispatcher) *AdminTenantHandler {
	return &AdminTenantHandler{db: db, repo: repo, audit: audit}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type GrantSubscriptionRequest struct {
	Plan    string `json:"plan" binding:"required"`
	EndDate string `json:"end_date" binding:"required"` // YYYY-MM-DD
}

type LifetimeRequest struct {
	Lifetime *bool `json:"lifetime" binding:"required"`
}

type tenantRow struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	OwnerEmail   string     `json:"owner_email"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	StoredStatus string     `json:"stored_status"`

	Entitlement entitlement.Decision `json:"entitlement"`
	StatusLabel string               `json:"status_label"`
}

////////////////////////////////////////////////////////
// LIST / DETAIL
////////////////////////////////////////////////////////

func (h *AdminTenantHandler) List(c *gin.Context) {
	var salons []models.Salon
	if err := h.db.Order("created_at DESC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_tenants", "Erro ao listar salões.")
		return
	}

	now := clock.Now()
	rows := make([]tenantRow, 0, len(salons))
	for i := range salons {
		s := &salons[i]
		dec := entitlement.Evaluate(s, now)
		rows = append(rows, tenantRow{
			ID:           s.ID,
			Name:         s.Name,
			Slug:         s.Slug,
			OwnerEmail:   s.OwnerEmail,
			LastLogin:    s.LastLogin,
			CreatedAt:    s.CreatedAt,
			StoredStatus: s.SubscriptionStatus,
			Entitlement:  dec,
			StatusLabel:  entitlement.Describe(s, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tenants": rows})
}

func (h *AdminTenantHandler) Get(c *gin.Context) {
	salon, ok := h.loadTenant(c)
	if !ok {
		return
	}

	now := clock.Now()
	c.JSON(http.StatusOK, gin.H{
		"salon":        salon,
		"entitlement":  entitlement.Evaluate(salon, now),
		"status_label": entitlement.Describe(salon, now),
	})
}

////////////////////////////////////////////////////////
// SUBSCRIPTION TRANSITIONS
////////////////////////////////////////////////////////

func (h *AdminTenantHandler) Grant(c *gin.Context) {
	salon, ok := h.loadTenant(c)
	if !ok {
		return
	}

	var req GrantSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	endDate, err := clock.ParseDate(req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return
	}

	entitlement.Grant(salon, req.Plan, endDate)
	h.save(c, salon, "subscription_granted")
}

func (h *AdminTenantHandler) Block(c *gin.Context) {
	salon, ok := h.loadTenant(c)
	if !ok {
		return
	}
	entitlement.Block(salon)
	h.save(c, salon, "tenant_blocked")
}

func (h *AdminTenantHandler) Unblock(c *gin.Context) {
	salon, ok := h.loadTenant(c)
	if !ok {
		return
	}
	entitlement.Unblock(salon)
	h.save(c, salon, "tenant_unblocked")
}

func (h *AdminTenantHandler) CancelSubscription(c *gin.Context) {
	salon, ok := h.loadTenant(c)
	if !ok {
		return
	}
	entitlement.Cancel(salon)
	h.save(c, salon, "subscription_cancelled")
}

func (h *AdminTenantHandler) SetLifetime(c *gin.Context) {
	salon, ok := h.loadTenant(c)
	if !ok {
		return
	}

	var req LifetimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entitlement.SetLifetimeFree(salon, *req.Lifetime)
	h.save(c, salon, "lifetime_flag_changed")
}

////////////////////////////////////////////////////////
// helpers
////////////////////////////////////////////////////////

func (h *AdminTenantHandler) loadTenant(c *gin.Context) (*models.Salon, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		return nil, false
	}

	salon, err := h.repo.GetSalonByID(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return salon, true
}

// save persists through the gateway so the cached snapshot is invalidated and
// the new entitlement takes effect on the public surface immediately.
func (h *AdminTenantHandler) save(c *gin.Context, salon *models.Salon, action string) {
	if err := h.repo.UpdateSalon(c.Request.Context(), salon); err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Erro ao atualizar salão.")
		return
	}

	adminID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &adminID,
		Action:   action,
		Entity:   "salon",
		EntityID: &salon.ID,
		Metadata: gin.H{"status": salon.SubscriptionStatus, "lifetime": salon.IsLifetimeFree},
	})

	now := clock.Now()
	c.JSON(http.StatusOK, gin.H{
		"salon":        salon,
		"entitlement":  entitlement.Evaluate(salon, now),
		"status_label": entitlement.Describe(salon, now),
	})
}
