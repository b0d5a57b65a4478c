package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/controllers"
	"github.com/sartoria/sartoria-api/middleware"
	"github.com/sartoria/sartoria-api/models"
	"github.com/sartoria/sartoria-api/services"
)

func main() {
	log.Println("Starting Sartoria API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.PasswordResetToken{},
		&models.Order{},
		&models.Measurement{},
		&models.Appointment{},
		&models.Fabric{},
		&models.Payment{},
		&models.Expense{},
		&models.Staff{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// S3-backed design photos are optional; everything else works without them
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Printf("S3 unavailable, design photo uploads disabled: %v", err)
		} else {
			services.InitImageService(s3Service)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, design photo uploads disabled")
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and all route groups.
func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		// Public endpoints
		v1.GET("/health", healthCheck)
		v1.POST("/track-order", controllers.TrackOrder)
		v1.POST("/messages", controllers.CreateMessage)

		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)
		v1.POST("/auth/admin-login", controllers.AdminLogin)
		v1.POST("/auth/password-reset", controllers.RequestPasswordReset)
		v1.POST("/auth/password-reset/confirm", controllers.ConfirmPasswordReset)

		// Authenticated customer endpoints
		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.GET("/users/me", controllers.GetMyProfile)

			authed.POST("/orders", controllers.CreateMyOrder)
			authed.GET("/orders", controllers.ListMyOrders)

			authed.POST("/measurements", controllers.CreateMeasurement)
			authed.GET("/measurements", controllers.ListMyMeasurements)
			authed.PUT("/measurements/:id", controllers.UpdateMeasurement)
			authed.PUT("/measurements/:id/default", controllers.SetDefaultMeasurement)
			authed.DELETE("/measurements/:id", controllers.DeleteMeasurement)

			authed.POST("/appointments", controllers.CreateAppointment)
			authed.GET("/appointments", controllers.ListMyAppointments)
		}

		// Admin endpoints
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", controllers.GetDashboardStats)
			admin.GET("/dashboard/ws", controllers.StreamDashboard)

			admin.GET("/customers", controllers.ListCustomers)

			admin.POST("/orders", controllers.AdminCreateOrder)
			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/:id", controllers.GetOrder)
			admin.GET("/orders/:id/timeline", controllers.GetOrderTimeline)
			admin.PATCH("/orders/:id", controllers.UpdateOrder)
			admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)
			admin.POST("/orders/:id/design-image", controllers.UploadDesignImage)
			admin.DELETE("/orders/:id/design-image", controllers.DeleteDesignImage)

			admin.GET("/appointments", controllers.ListAppointments)
			admin.PATCH("/appointments/:id/status", controllers.UpdateAppointmentStatus)

			admin.POST("/fabrics", controllers.CreateFabric)
			admin.GET("/fabrics", controllers.ListFabrics)
			admin.PUT("/fabrics/:id", controllers.UpdateFabric)
			admin.DELETE("/fabrics/:id", controllers.DeleteFabric)

			admin.POST("/staff", controllers.CreateStaff)
			admin.GET("/staff", controllers.ListStaff)
			admin.PUT("/staff/:id", controllers.UpdateStaff)

			admin.POST("/expenses", controllers.CreateExpense)
			admin.GET("/expenses", controllers.ListExpenses)

			admin.POST("/payments", controllers.CreatePayment)
			admin.GET("/payments", controllers.ListPayments)

			admin.GET("/messages", controllers.ListMessages)
			admin.PATCH("/messages/:id/read", controllers.MarkMessageRead)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sartoria API is running",
	})
}
