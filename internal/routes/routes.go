package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	"github.com/sharpside-app/sharpener-booking/internal/config"
	"github.com/sharpside-app/sharpener-booking/internal/handlers"
	infraRepo "github.com/sharpside-app/sharpener-booking/internal/infra/repository"
	"github.com/sharpside-app/sharpener-booking/internal/middleware"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/notify"
	"github.com/sharpside-app/sharpener-booking/internal/storage"
	ucAvailability "github.com/sharpside-app/sharpener-booking/internal/usecase/availability"
	ucBooking "github.com/sharpside-app/sharpener-booking/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifyDispatcher := notify.NewDispatcher(notify.LogSender{})

	clk := clock.SystemClock{}

	photoStore := storage.NewPhotoStore(cfg)

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	createAvailabilityUC := ucAvailability.NewCreate(bookingRepo, auditDispatcher)
	updateAvailabilityUC := ucAvailability.NewUpdate(bookingRepo, auditDispatcher)
	deleteAvailabilityUC := ucAvailability.NewDelete(bookingRepo, auditDispatcher)
	listAvailabilityUC := ucAvailability.NewList(bookingRepo)

	// ======================================================
	// USE CASES: BOOKING
	// ======================================================
	freeSlotsUC := ucBooking.NewFreeSlots(bookingRepo)

	reserveUC := ucBooking.NewReserve(bookingRepo, notifyDispatcher, auditDispatcher, clk)
	confirmUC := ucBooking.NewConfirm(bookingRepo, notifyDispatcher, auditDispatcher, clk)
	denyUC := ucBooking.NewDeny(bookingRepo, notifyDispatcher, auditDispatcher, clk)
	cancelUC := ucBooking.NewCancel(bookingRepo, notifyDispatcher, auditDispatcher, clk)
	completeUC := ucBooking.NewComplete(bookingRepo, auditDispatcher, clk)
	noShowUC := ucBooking.NewMarkNoShow(bookingRepo, auditDispatcher, clk)
	rateUC := ucBooking.NewRate(bookingRepo, auditDispatcher, clk)
	viewUC := ucBooking.NewView(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	locationHandler := handlers.NewLocationHandler(db, auditDispatcher, photoStore)
	machineHandler := handlers.NewMachineHandler(db, auditDispatcher)

	availabilityHandler := handlers.NewAvailabilityHandler(
		createAvailabilityUC,
		updateAvailabilityUC,
		deleteAvailabilityUC,
		listAvailabilityUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		reserveUC,
		confirmUC,
		denyUC,
		cancelUC,
		completeUC,
		noShowUC,
		rateUC,
		viewUC,
	)

	publicHandler := handlers.NewPublicHandler(db, freeSlotsUC)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimit(rdb, 60, time.Minute))
		{
			publicAPI.GET("/locations", publicHandler.SearchLocations)
			publicAPI.GET("/locations/:id/availabilities", publicHandler.ListAvailabilities)
			publicAPI.GET("/availabilities/:id/slots", publicHandler.FreeSlots)
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

			// appointments: shared by both roles, authorization lives in
			// the use cases
			secured.GET("/me/appointments", bookingHandler.ListMine)
			secured.GET("/appointments/:id", bookingHandler.Get)
			secured.PATCH("/appointments/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/appointments/:id/deny", bookingHandler.Deny)
			secured.PATCH("/appointments/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", bookingHandler.Complete)
			secured.PATCH("/appointments/:id/no-show", bookingHandler.MarkNoShow)
			secured.POST("/appointments/:id/rating", bookingHandler.Rate)

			// customers
			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(models.RoleCustomer))
			{
				customer.POST("/appointments", bookingHandler.Reserve)
			}

			// sharpeners
			sharpener := secured.Group("/me")
			sharpener.Use(middleware.RequireRole(models.RoleSharpener))
			{
				sharpener.GET("/locations", locationHandler.ListMine)
				sharpener.POST("/locations", locationHandler.Create)
				sharpener.PATCH("/locations/:id", locationHandler.Update)
				sharpener.DELETE("/locations/:id", locationHandler.Delete)
				sharpener.POST("/locations/:id/photo", locationHandler.UploadPhoto)

				sharpener.GET("/locations/:id/machines", machineHandler.List)
				sharpener.POST("/locations/:id/machines", machineHandler.Create)
				sharpener.PATCH("/locations/:id/machines/:machineId", machineHandler.Update)

				sharpener.GET("/locations/:id/availabilities", availabilityHandler.ListByLocation)
				sharpener.POST("/availabilities", availabilityHandler.Create)
				sharpener.PATCH("/availabilities/:id", availabilityHandler.Update)
				sharpener.DELETE("/availabilities/:id", availabilityHandler.Delete)
			}
		}
	}
}
