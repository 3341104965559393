package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/config"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/middleware"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/peluqueria-scheduler/internal/usecase/appointment"
)

// Deps are the singletons built by main and shared by every route.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil when no cache is configured
	Cache  domain.AvailabilityCache
	Audit  *audit.Dispatcher
	Clock  timezone.Clock
	Config *config.Config
	Logger zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	barberRepo := infraRepo.NewBarberGormRepository(d.DB)
	shopRepo := infraRepo.NewShopGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	authz := access.NewService(d.Logger)

	retry := ucAppointment.RetryPolicy{
		Attempts: cfg.DBRetryAttempts,
		Backoff:  cfg.DBRetryBackoff,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Cache, d.Clock, d.Logger)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Cache, d.Clock, d.Audit, retry, d.Logger)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, authz, d.Cache, d.Audit, d.Logger)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, authz)
	listClientUC := ucAppointment.NewListClientAppointments(appointmentRepo, d.Clock)
	historyUC := ucAppointment.NewBarberHistory(appointmentRepo, authz)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg.JWTSecret, d.Logger)
	meHandler := handlers.NewMeHandler(d.DB, d.Logger)
	publicHandler := handlers.NewPublicHandler(d.DB, barberRepo, getAvailabilityUC, d.Logger)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		listByDateUC,
		listClientUC,
		historyUC,
		d.Logger,
	)

	shopHandler := handlers.NewShopHandler(d.DB, appointmentRepo, authz, d.Logger)
	rosterHandler := handlers.NewBarberRosterHandler(barberRepo, appointmentRepo, authz, d.Cache, d.Audit, d.Logger)
	slotsHandler := handlers.NewSlotTemplatesHandler(barberRepo, appointmentRepo, authz, d.Cache, d.Audit, d.Logger)
	catalogHandler := handlers.NewServiceCatalogHandler(d.DB, appointmentRepo, authz, d.Audit, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, appointmentRepo, authz, d.Logger)
	adminHandler := handlers.NewAdminHandler(shopRepo, userRepo, barberRepo, d.Cache, d.Audit, d.Logger)

	bookingLimiter := middleware.NewRateLimiter(cfg.BookingRateLimit, cfg.BookingRateBurst)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", health(d))
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/shops", publicHandler.ListShops)
		api.GET("/shops/:id/barbers", publicHandler.ListShopBarbers)
		api.GET("/shops/:id/services", publicHandler.ListShopServices)
		api.GET("/availability", publicHandler.Availability)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/appointments", bookingLimiter.Middleware(), appointmentHandler.Create)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/client", appointmentHandler.ListForClient)

			secured.GET("/barbers/:id/history", appointmentHandler.History)
			secured.GET("/barbers/:id/slots", slotsHandler.List)
		}

		// ------------------------------
		// SHOP MANAGEMENT
		// ------------------------------
		manage := secured.Group("/")
		manage.Use(middleware.RequireRoles(models.RoleOwner, models.RoleOwnerVIP, models.RoleAdmin))
		{
			manage.GET("/shops/me", shopHandler.GetMine)
			manage.PATCH("/shops/me", shopHandler.UpdateMine)

			manage.POST("/barbers", rosterHandler.Create)
			manage.DELETE("/barbers/:id", rosterHandler.Delete)
			manage.PUT("/barbers/:id/slots", slotsHandler.Replace)

			manage.POST("/services", catalogHandler.Create)
			manage.PATCH("/services/:id", catalogHandler.Update)
			manage.DELETE("/services/:id", catalogHandler.Delete)

			manage.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// PLATFORM ADMIN
		// ------------------------------
		admin := secured.Group("/")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/shops", adminHandler.CreateShop)
			admin.DELETE("/shops/:id", adminHandler.DeleteShop)

			admin.POST("/users", adminHandler.CreateOwner)
			admin.POST("/users/convert", adminHandler.ConvertToBarber)
			admin.GET("/users/owners", adminHandler.ListOwners)
			admin.POST("/users/owner-role", adminHandler.SetOwnerRole)
		}
	}
}

// health reports 503 when the database or a configured redis is down.
func health(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		healthy := true

		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "down"
			healthy = false
		}

		if d.Redis != nil {
			checks["redis"] = "ok"
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
				healthy = false
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"ok": healthy, "checks": checks})
	}
}
