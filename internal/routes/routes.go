package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/config"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/handlers"
	infraRepo "github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/infra/repository"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/lock"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/middleware"
	ucScheduling "github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/usecase/scheduling"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	locker := lock.NewManager(rdb, cfg.LockLease)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db, locker)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	getSlotsUC := ucScheduling.NewGetSlots(scheduleRepo)

	reserveUC := ucScheduling.NewReserve(
		scheduleRepo,
		scheduleRepo,
		logger,
		cfg.LockWait,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	practitionerHandler := handlers.NewPractitionerHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		scheduleRepo,
		getSlotsUC,
		reserveUC,
	)

	publicHandler := handlers.NewPublicHandler(db, getSlotsUC, reserveUC)

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
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/practitioners", publicHandler.ListPractitioners)
			publicAPI.GET("/:slug/slots", publicHandler.ListSlots)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
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

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)

			secured.GET("/me/patients", patientHandler.List)
			secured.POST("/me/patients", patientHandler.Create)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/practitioners", practitionerHandler.List)
			secured.POST("/me/practitioners", practitionerHandler.Create)
			secured.PATCH("/me/practitioners/:id", practitionerHandler.Update)

			// ------------------------------
			// SCHEDULE SETTINGS
			// ------------------------------
			secured.GET("/me/weekly-windows", availabilityHandler.GetWeeklyWindows)
			secured.PUT("/me/weekly-windows", availabilityHandler.UpdateWeeklyWindows)

			secured.GET("/me/breaks", availabilityHandler.ListBreaks)
			secured.POST("/me/breaks", availabilityHandler.CreateBreak)
			secured.DELETE("/me/breaks/:id", availabilityHandler.DeleteBreak)

			secured.GET("/me/exceptions", availabilityHandler.ListExceptions)
			secured.PUT("/me/exceptions", availabilityHandler.UpsertException)
			secured.DELETE("/me/exceptions", availabilityHandler.DeleteException)

			// ------------------------------
			// SLOTS + BOOKINGS
			// ------------------------------
			secured.GET("/me/slots", bookingHandler.ListSlots)

			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
		}
	}
}
