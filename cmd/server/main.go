package main

import (
	"log"
	"time"

	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/handler"
	"github.com/chandragiri4649/milksync-sub000/internal/jobs"
	"github.com/chandragiri4649/milksync-sub000/internal/middleware"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err := database.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.LoginHistory{},
		&models.Distributor{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.DamagedProduct{},
		&models.Bill{},
		&models.BillItem{},
		&models.Payment{},
		&models.WalletEntry{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedRolesAndAdmin()

	// 4. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Setup Routes
	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	adminHandler := &handler.AdminHandler{}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		adminRoutes.POST("/distributors", adminHandler.CreateDistributor)
		adminRoutes.GET("/distributors", adminHandler.ListDistributors)
		adminRoutes.GET("/distributors/:id", adminHandler.GetDistributor)
		adminRoutes.PUT("/distributors/:id", adminHandler.UpdateDistributor)
		adminRoutes.DELETE("/distributors/:id", adminHandler.DeleteDistributor)
		adminRoutes.POST("/users", adminHandler.CreateUser)
		adminRoutes.GET("/users", adminHandler.ListUsers)
		adminRoutes.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
		adminRoutes.PUT("/users/:id/password", adminHandler.ResetUserPassword)
		adminRoutes.GET("/login-history", adminHandler.GetLoginHistory)
		adminRoutes.GET("/dashboard", adminHandler.GetDashboardStats)
	}

	catalogHandler := &handler.CatalogHandler{}

	// Any authenticated role may read a distributor's catalog
	r.GET("/api/v1/catalog/distributors/:id/products", middleware.AuthMiddleware(), catalogHandler.ListProductsByDistributor)

	catalogRoutes := r.Group("/api/v1/catalog")
	catalogRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleDistributor))
	{
		catalogRoutes.POST("/products", catalogHandler.CreateProduct)
		catalogRoutes.PUT("/products/:id", catalogHandler.UpdateProduct)
		catalogRoutes.DELETE("/products/:id", catalogHandler.DeleteProduct)
	}

	orderHandler := &handler.OrderHandler{}
	orderRoutes := r.Group("/api/v1/orders")
	orderRoutes.Use(middleware.AuthMiddleware(models.RoleStaff, models.RoleAdmin))
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.ListOrders)
		orderRoutes.GET("/mine", orderHandler.ListMyOrders)
		orderRoutes.GET("/pending-tomorrow", orderHandler.ListPendingForTomorrow)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
		orderRoutes.PUT("/:id/deliver", orderHandler.DeliverOrder)
		orderRoutes.POST("/bulk-delete", orderHandler.BulkDeleteOrders)
	}

	billingHandler := &handler.BillingHandler{}
	// Bill regeneration sits under the order path but is billing's concern
	r.POST("/api/v1/orders/:id/bill", middleware.AuthMiddleware(models.RoleAdmin), billingHandler.UpsertBillFromOrder)

	billRoutes := r.Group("/api/v1/bills")
	{
		billRoutes.GET("", middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff), billingHandler.ListBills)
		billRoutes.GET("/mine", middleware.AuthMiddleware(models.RoleDistributor), billingHandler.ListMyBills)
		billRoutes.PUT("/:id/lock", middleware.AuthMiddleware(models.RoleAdmin), billingHandler.LockBill)
		billRoutes.PUT("/:id/unlock", middleware.AuthMiddleware(models.RoleAdmin), billingHandler.UnlockBill)
		billRoutes.DELETE("/:id", middleware.AuthMiddleware(models.RoleAdmin), billingHandler.DeleteBill)
	}

	paymentHandler := &handler.PaymentHandler{}
	paymentRoutes := r.Group("/api/v1/payments")
	{
		paymentRoutes.POST("", middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff), paymentHandler.CreatePayment)
		paymentRoutes.GET("", middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff), paymentHandler.ListPayments)
		paymentRoutes.GET("/mine", middleware.AuthMiddleware(models.RoleDistributor), paymentHandler.ListMyPayments)
		paymentRoutes.DELETE("/:id", middleware.AuthMiddleware(models.RoleAdmin), paymentHandler.DeletePayment)
	}

	r.GET("/api/v1/wallet/:distributorId", middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleDistributor), billingHandler.GetBalance)

	reportHandler := &handler.ReportHandler{}
	reportRoutes := r.Group("/api/v1/reports")
	reportRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		reportRoutes.GET("/monthly", reportHandler.MonthlyReport)
		reportRoutes.GET("/monthly/export", reportHandler.ExportMonthlyReport)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 6. Start Background Jobs
	reconcileJob := jobs.NewBillingReconciliationJob(config.AppConfig.Defaults.ReconcileSchedule, config.GetLogger())
	if err := reconcileJob.Start(); err != nil {
		log.Fatalf("Failed to start reconciliation job: %v", err)
	}
	defer reconcileJob.Stop()

	// 7. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
