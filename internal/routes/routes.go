package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/audit"
	"github.com/saloncore/salon-scheduler/internal/config"
	"github.com/saloncore/salon-scheduler/internal/handlers"
	"github.com/saloncore/salon-scheduler/internal/infra/lock"
	infraRepo "github.com/saloncore/salon-scheduler/internal/infra/repository"
	"github.com/saloncore/salon-scheduler/internal/media"
	"github.com/saloncore/salon-scheduler/internal/middleware"
	"github.com/saloncore/salon-scheduler/internal/payments"
	"github.com/saloncore/salon-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// Bookings fall back to database locking alone when Redis is not
	// configured.
	var locker lock.Locker = lock.Noop{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		locker = lock.NewRedisLocker(client)
	} else {
		log.Println("REDIS_ADDR not set, booking lease disabled")
	}

	storage := media.NewStorage(cfg)
	if storage == nil {
		log.Println("S3 not configured, media uploads disabled")
	}

	var gateway *payments.MercadoPago
	if cfg.MercadoPagoToken != "" {
		var err error
		gateway, err = payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercado pago init failed, payments disabled: %v", err)
			gateway = nil
		}
	}

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	resolveAvailabilityUC := scheduling.NewResolveAvailability(scheduleRepo)
	checkConflictUC := scheduling.NewCheckConflict(scheduleRepo)
	freeSlotsUC := scheduling.NewFreeSlots(scheduleRepo)

	requestBookingUC := scheduling.NewRequestBooking(scheduleRepo, locker, auditDispatcher)
	rescheduleBookingUC := scheduling.NewRescheduleBooking(scheduleRepo, locker, auditDispatcher)
	cancelBookingUC := scheduling.NewCancelBooking(scheduleRepo, auditDispatcher)

	confirmUC := scheduling.NewConfirmAppointment(scheduleRepo, auditDispatcher)
	completeUC := scheduling.NewCompleteAppointment(scheduleRepo, auditDispatcher)
	noShowUC := scheduling.NewMarkNoShow(scheduleRepo, auditDispatcher)
	deleteUC := scheduling.NewDeleteAppointment(scheduleRepo, auditDispatcher)

	listByDateUC := scheduling.NewListAppointmentsByDate(scheduleRepo)
	listByMonthUC := scheduling.NewListAppointmentsByMonth(scheduleRepo)
	reportUC := scheduling.NewAppointmentReport(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		requestBookingUC,
		rescheduleBookingUC,
		cancelBookingUC,
		confirmUC,
		completeUC,
		noShowUC,
		deleteUC,
		listByDateUC,
		listByMonthUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		resolveAvailabilityUC,
		checkConflictUC,
		freeSlotsUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		scheduleRepo,
		requestBookingUC,
		resolveAvailabilityUC,
		freeSlotsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	reportHandler := handlers.NewReportHandler(db, reportUC)
	mediaHandler := handlers.NewMediaHandler(db, storage)
	paymentHandler := handlers.NewPaymentHandler(db, gateway)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetSalon)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/slots", publicHandler.FreeSlots)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/appointments/:reference", publicHandler.GetAppointmentByReference)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)
			secured.POST("/me/salon/logo", mediaHandler.UploadSalonLogo)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/customers", customerHandler.List)
			secured.POST("/me/customers", customerHandler.Create)

			// ------------------------------
			// EMPLOYEES
			// ------------------------------
			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)
			secured.PATCH("/me/employees/:id", employeeHandler.Update)
			secured.POST("/me/employees/:id/photo", mediaHandler.UploadEmployeePhoto)

			secured.GET("/me/employees/:id/working-hours", employeeHandler.GetWorkingHours)
			secured.PUT("/me/employees/:id/working-hours", employeeHandler.UpdateWorkingHours)

			secured.GET("/me/employees/:id/leave-days", employeeHandler.GetLeaveDays)
			secured.PUT("/me/employees/:id/leave-days", employeeHandler.UpdateLeaveDays)

			secured.GET("/me/employees/:id/services", employeeHandler.GetCapabilities)
			secured.PUT("/me/employees/:id/services", employeeHandler.UpdateCapabilities)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/me/availability", availabilityHandler.Resolve)
			secured.GET("/me/availability/conflict", availabilityHandler.CheckConflict)
			secured.GET("/me/availability/slots", availabilityHandler.FreeSlots)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)
			secured.POST("/me/appointments/:id/payment-link", paymentHandler.CreatePaymentLink)

			secured.GET("/me/reports/appointments", reportHandler.Appointments)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
