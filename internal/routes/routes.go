package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/salonworks/salon-scheduler/internal/audit"
	"github.com/salonworks/salon-scheduler/internal/config"
	"github.com/salonworks/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonworks/salon-scheduler/internal/infra/repository"
	"github.com/salonworks/salon-scheduler/internal/lock"
	"github.com/salonworks/salon-scheduler/internal/middleware"
	ucAppointment "github.com/salonworks/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	slotLocker := lock.NewSlotLocker(rdb, 0)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucAppointment.NewCreateBooking(
		scheduleRepo,
		scheduleRepo,
		slotLocker,
		auditDispatcher,
	)

	previewConflictsUC := ucAppointment.NewPreviewConflicts(
		scheduleRepo,
		scheduleRepo,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	cancelGroupUC := ucAppointment.NewCancelGroup(
		scheduleRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		scheduleRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		scheduleRepo,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		scheduleRepo,
		scheduleRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	timeOffHandler := handlers.NewTimeOffHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		previewConflictsUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		cancelGroupUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createBookingUC, availabilityUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/customers", customerHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/time-off", timeOffHandler.ListRules)
			secured.POST("/me/time-off", timeOffHandler.CreateRule)
			secured.DELETE("/me/time-off/:id", timeOffHandler.DeleteRule)

			secured.GET("/me/salon/time-off", timeOffHandler.ListSalonTimeOff)
			secured.POST("/me/salon/time-off", timeOffHandler.CreateSalonTimeOff)
			secured.DELETE("/me/salon/time-off/:id", timeOffHandler.DeleteSalonTimeOff)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.POST("/me/appointments/conflicts", appointmentHandler.PreviewConflicts)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointment-groups/:groupId/cancel", appointmentHandler.CancelGroup)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
