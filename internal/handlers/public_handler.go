package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/entitlement"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/models"
	ucBooking "github.com/salaoflow/salon-scheduler/internal/usecase/booking"
	ucOrder "github.com/salaoflow/salon-scheduler/internal/usecase/order"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	repo           domain.Repository
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateAppointment
	orderUC        *ucOrder.CreateOrder
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateAppointment,
	orderUC *ucOrder.CreateOrder,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		repo:           repo,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		orderUC:        orderUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type PublicCreateOrderRequest struct {
	ClientName  string              `json:"client_name" binding:"required"`
	ClientPhone string              `json:"client_phone" binding:"required"`
	Items       []ucOrder.ItemInput `json:"items" binding:"required"`
}

////////////////////////////////////////////////////////
// SALON CARD + SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) GetSalon(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon": gin.H{
			"id":            salon.ID,
			"name":          salon.Name,
			"slug":          salon.Slug,
			"phone":         salon.Phone,
			"address":       salon.Address,
			"logo_url":      salon.LogoURL,
			"opening_hours": salon.OpeningHours,
		},
		"services": services,
	})
}

func (h *PublicHandler) ListProducts(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("salon_id = ? AND active = true", salon.ID)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	date, err := clock.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			SalonID:   salon.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (SELF-SERVICE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	// tenant bloqueado/expirado não recebe novos agendamentos
	if dec := entitlement.Evaluate(salon, clock.Now()); !dec.Allowed {
		httperr.Forbidden(c, "tenant_not_entitled", "Agendamento indisponível no momento.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateAppointmentInput{
			SalonID:     salon.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// CREATE ORDER (HANDOFF VIA WHATSAPP)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateOrder(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	var req PublicCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.orderUC.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		SalonID:     salon.ID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Items:       req.Items,
	})
	if err != nil {
		if httperr.IsBusiness(err, "product_not_found") {
			httperr.BadRequest(c, "product_not_found", "Produto inválido.")
			return
		}
		if httperr.IsBusiness(err, "empty_order") {
			httperr.BadRequest(c, "empty_order", "Pedido vazio.")
			return
		}
		httperr.Internal(c, "order_failed", "Erro ao registrar pedido.")
		return
	}

	c.JSON(http.StatusCreated, out)
}

////////////////////////////////////////////////////////
// helpers
////////////////////////////////////////////////////////

// loadSalon resolves the tenant by slug through the gateway, so public reads
// keep working on the cached snapshot during a primary outage.
func (h *PublicHandler) loadSalon(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return salon, true
}
