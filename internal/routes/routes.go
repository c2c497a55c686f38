package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucReport "github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// Deps are the process-wide singletons built by the serve command.
// Audit and Cache may be nil.
type Deps struct {
	Log   *slog.Logger
	Clock timezone.Clock
	Audit *audit.Dispatcher
	Cache ucAppointment.SlotCache
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.AccessLog(deps.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		middleware.ActorMiddleware(cfg.JWTSecret, deps.Log),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	var appointmentRepo domain.Repository = infraRepo.NewAppointmentGormRepository(db)

	emails := validators.EmailChecker{CheckDomain: cfg.EmailDomainCheck}
	phones := validators.PhoneChecker{Region: cfg.PhoneRegion}

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		deps.Audit,
		deps.Clock,
	)

	transitionStatusUC := ucAppointment.NewTransitionStatus(
		appointmentRepo,
		deps.Audit,
		deps.Clock,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		deps.Audit,
		deps.Clock,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointmentDetails(
		appointmentRepo,
		deps.Audit,
		deps.Clock,
	)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		deps.Cache,
		deps.Clock,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
		deps.Clock,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
		deps.Clock,
	)

	// ======================================================
	// 🧠 USE CASES: REPORTS
	// ======================================================
	completedServicesUC := ucReport.NewCompletedServices(
		appointmentRepo,
		deps.Clock,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(deps.Clock, handlers.AppointmentUseCases{
		Create:     createAppointmentUC,
		Transition: transitionStatusUC,
		Reschedule: rescheduleAppointmentUC,
		Update:     updateAppointmentUC,
		Get:        ucAppointment.NewGetAppointment(appointmentRepo),
		History:    ucAppointment.NewListHistory(appointmentRepo),
		ByDate:     listAppointmentsByDateUC,
		ByMonth:    listAppointmentsByMonthUC,
	})

	availabilityHandler := handlers.NewAvailabilityHandler(deps.Clock, getAvailabilityUC)

	clientHandler := handlers.NewClientHandler(db, emails, phones)
	professionalHandler := handlers.NewProfessionalHandler(db, deps.Audit, emails, phones)
	serviceHandler := handlers.NewServiceHandler(db)

	reportHandler := handlers.NewReportHandler(deps.Clock, completedServicesUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, deps.Clock)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		api.GET("/availability", availabilityHandler.Get)
		api.GET("/available-times", availabilityHandler.Get)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.ListByDate)
		api.GET("/appointments/month", appointmentHandler.ListByMonth)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.GET("/appointments/:id/history", appointmentHandler.History)
		api.PATCH("/appointments/:id", appointmentHandler.Update)
		api.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.StatusShortcut(domain.StatusConfirmed))
		api.PATCH("/appointments/:id/start", appointmentHandler.StatusShortcut(domain.StatusInProgress))
		api.PATCH("/appointments/:id/complete", appointmentHandler.StatusShortcut(domain.StatusCompleted))
		api.PATCH("/appointments/:id/cancel", appointmentHandler.StatusShortcut(domain.StatusCanceled))
		api.PATCH("/appointments/:id/no-show", appointmentHandler.StatusShortcut(domain.StatusNoShow))

		// ------------------------------
		// CATALOG
		// ------------------------------
		api.GET("/clients", clientHandler.List)
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients/:id", clientHandler.Get)
		api.PATCH("/clients/:id", clientHandler.Update)

		api.GET("/professionals", professionalHandler.List)
		api.POST("/professionals", professionalHandler.Create)
		api.GET("/professionals/:id", professionalHandler.Get)
		api.PATCH("/professionals/:id", professionalHandler.Update)
		api.PUT("/professionals/:id/services", professionalHandler.ReplaceServices)

		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.GET("/services/:id", serviceHandler.Get)
		api.PATCH("/services/:id", serviceHandler.Update)

		// ------------------------------
		// REPORTS & AUDIT
		// ------------------------------
		api.GET("/reports/services", reportHandler.CompletedServices)
		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
