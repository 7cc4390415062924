package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucLoyalty "github.com/BruksfildServices01/salon-scheduler/internal/usecase/loyalty"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	slotCache *cache.Cache,
	cfg *config.Config,
	log *slog.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	loyaltyRepo := infraRepo.NewLoyaltyGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	loyaltyEngine := ucLoyalty.NewEngine(loyaltyRepo, log)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		loyaltyEngine,
		slotCache,
		auditDispatcher,
		log,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		slotCache,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		slotCache,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	rulesHandler := handlers.NewAvailabilityRulesHandler(db, slotCache)
	hoursHandler := handlers.NewBusinessHoursHandler(db, slotCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		availabilityUC,
		listByDateUC,
		listByMonthUC,
		appointmentRepo,
	)

	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyEngine, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createAppointmentUC, availabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (by tenant slug)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/tenant", tenantHandler.GetMeTenant)
			secured.PATCH("/me/tenant", tenantHandler.UpdateMeTenant)

			secured.GET("/me/business-hours", hoursHandler.Get)
			secured.PUT("/me/business-hours", hoursHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.PUT("/me/services/offered", serviceHandler.SetOffered)

			secured.GET("/me/availability-rules", rulesHandler.Get)
			secured.PUT("/me/availability-rules", rulesHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PUT("/me/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// LOYALTY
			// ------------------------------
			secured.GET("/me/loyalty", loyaltyHandler.Get)
			secured.POST("/me/loyalty/reward", loyaltyHandler.GrantReward)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
