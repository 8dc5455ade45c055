package routes

import (
	"optical-booking-server/internal/config"
	"optical-booking-server/internal/handlers"
	"optical-booking-server/internal/middleware"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Shared services
	assistant := services.NewAssistant(services.NewGormSlotFinder(db))
	whatsAppClient := services.NewWhatsAppClient(cfg.WhatsApp)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, cfg)
	chatHandler := handlers.NewChatHandler(db, assistant)
	whatsAppHandler := handlers.NewWhatsAppHandler(db, cfg, assistant, whatsAppClient)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Meta Cloud API webhook: verification handshake plus inbound
		// deliveries, authenticated by the shared verify token instead
		// of a JWT.
		webhookRoutes := public.Group("/webhooks/whatsapp")
		{
			webhookRoutes.GET("", whatsAppHandler.VerifyWebhook)
			webhookRoutes.POST("", whatsAppHandler.ReceiveMessage)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Doctor directory - accessible by all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Patients of the organization - staff, doctors and admins only
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSuperAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Weekly schedule template routes
		scheduleRoutes := private.Group("/schedules")
		{
			// Reading a doctor's template is open to any authenticated user
			scheduleRoutes.GET("/doctor/:doctorId", scheduleHandler.GetDoctorSchedule)

			// Editing is restricted to the doctor themselves or staff; the
			// handler enforces ownership
			managed := scheduleRoutes.Group("")
			managed.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin))
			{
				managed.POST("", scheduleHandler.CreateScheduleEntry)
				managed.PUT("/:id", scheduleHandler.UpdateScheduleEntry)
				managed.DELETE("/:id", scheduleHandler.DeleteScheduleEntry)
			}
		}

		// Availability routes (slots are computed per request)
		availabilityRoutes := private.Group("/availability")
		{
			availabilityRoutes.GET("", availabilityHandler.SearchAvailability)
			availabilityRoutes.GET("/doctor/:doctorId", availabilityHandler.GetDoctorAvailability)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)

			// Logic inside handler differentiates by role
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			// Authorization inside handlers for the remaining routes
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/reschedule", appointmentHandler.RescheduleAppointment)
		}

		// Booking assistant chat routes
		chatRoutes := private.Group("/chat")
		{
			chatRoutes.POST("/messages", chatHandler.SendMessage)
			chatRoutes.GET("/messages", chatHandler.GetHistory)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
