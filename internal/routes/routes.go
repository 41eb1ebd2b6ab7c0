package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	"github.com/salaoflow/salon-scheduler/internal/cache"
	"github.com/salaoflow/salon-scheduler/internal/config"
	"github.com/salaoflow/salon-scheduler/internal/handlers"
	infraRepo "github.com/salaoflow/salon-scheduler/internal/infra/repository"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/uploads"
	ucBooking "github.com/salaoflow/salon-scheduler/internal/usecase/booking"
	ucOrder "github.com/salaoflow/salon-scheduler/internal/usecase/order"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	salonCache := cache.NewSalonCache(rdb)

	primaryRepo := infraRepo.NewBookingGormRepository(db)
	bookingRepo := infraRepo.NewFailoverRepository(primaryRepo, salonCache, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	uploader := uploads.NewUploader(cfg)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	createAppointmentUC := ucBooking.NewCreateAppointment(bookingRepo, auditDispatcher)
	cancelAppointmentUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher)
	updateStatusUC := ucBooking.NewUpdateAppointmentStatus(bookingRepo, auditDispatcher)
	rescheduleUC := ucBooking.NewRescheduleAppointment(bookingRepo, auditDispatcher)
	listAppointmentsUC := ucBooking.NewListAppointments(bookingRepo)

	createOrderUC := ucOrder.NewCreateOrder(db, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	salonHandler := handlers.NewSalonHandler(db, bookingRepo)
	openingHoursHandler := handlers.NewOpeningHoursHandler(db, bookingRepo)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	blockedTimeHandler := handlers.NewBlockedTimeHandler(db, auditDispatcher)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	uploadHandler := handlers.NewUploadHandler(db, bookingRepo, uploader)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		cancelAppointmentUC,
		updateStatusUC,
		rescheduleUC,
		listAppointmentsUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		bookingRepo,
		availabilityUC,
		createAppointmentUC,
		createOrderUC,
	)

	adminTenantHandler := handlers.NewAdminTenantHandler(db, bookingRepo, auditDispatcher)
	planHandler := handlers.NewPlanHandler(db)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (vitrine por slug)
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("", publicHandler.GetSalon)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)

			publicAPI.GET("/products", publicHandler.ListProducts)
			publicAPI.POST("/orders", publicHandler.CreateOrder)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA (dono do salão)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		secured.Use(middleware.EntitlementGate(db))
		{
			secured.GET("/salon", salonHandler.GetMySalon)
			secured.PATCH("/salon", salonHandler.UpdateMySalon)
			secured.POST("/salon/logo", uploadHandler.SalonLogo)

			secured.GET("/opening-hours", openingHoursHandler.Get)
			secured.PUT("/opening-hours", openingHoursHandler.Update)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)
			secured.POST("/services/:id/image", uploadHandler.ServiceImage)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			secured.GET("/blocked-times", blockedTimeHandler.List)
			secured.POST("/blocked-times", blockedTimeHandler.Create)
			secured.DELETE("/blocked-times/:id", blockedTimeHandler.Delete)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.PATCH("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)

			secured.GET("/orders", orderHandler.List)
			secured.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// API ADMIN (superadmin)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		admin.Use(middleware.RequireSuperadmin())
		{
			admin.GET("/tenants", adminTenantHandler.List)
			admin.GET("/tenants/:id", adminTenantHandler.Get)
			admin.POST("/tenants/:id/grant", adminTenantHandler.Grant)
			admin.POST("/tenants/:id/block", adminTenantHandler.Block)
			admin.POST("/tenants/:id/unblock", adminTenantHandler.Unblock)
			admin.POST("/tenants/:id/cancel", adminTenantHandler.CancelSubscription)
			admin.POST("/tenants/:id/lifetime", adminTenantHandler.SetLifetime)

			admin.GET("/plans", planHandler.List)
			admin.POST("/plans", planHandler.Create)
			admin.PATCH("/plans/:id", planHandler.Update)
			admin.DELETE("/plans/:id", planHandler.Delete)
		}
	}
}
