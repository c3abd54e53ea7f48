package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	"github.com/BruksfildServices01/appointment-scheduler/internal/handlers"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

type Deps struct {
	Config *config.Config
	Engine *ucAppointment.Engine
	// DB is nil with the in-memory store; audit routes are skipped then.
	DB     *gorm.DB
	Health *handlers.HealthHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowedOrigins))

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(d.Engine)
	meHandler := handlers.NewMeHandler()

	health := d.Health
	if health == nil {
		health = handlers.NewHealthHandler(nil)
	}

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", health.Get)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// public
		api.GET("/businesses/:businessId/availability", appointmentHandler.Availability)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/businesses/:businessId/appointments", appointmentHandler.Create)

			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/chain", appointmentHandler.Chain)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.POST("/appointments/:id/confirm", appointmentHandler.Confirm)

			secured.GET("/staff/:staffId/appointments", appointmentHandler.ListByDate)
			secured.GET("/staff/:staffId/appointments/month", appointmentHandler.ListByMonth)

			if d.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
				secured.GET("/businesses/:businessId/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
