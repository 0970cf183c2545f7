package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vacationly/internal/config"
	"vacationly/internal/database"
	"vacationly/internal/handlers"
	"vacationly/internal/logger"
	"vacationly/internal/middleware"
	"vacationly/internal/services"
	"vacationly/internal/validator"

	_ "vacationly/internal/docs" // Import swagger docs
)

// @title           Vacationly API
// @version         1.0
// @description     Vacationly is a vacation tracking application for teams: leave requests and approvals, business-day calculation, public holidays, capacity planning, and cloud vault backup.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	if err := validator.Register(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Seed initial organization data when the database is empty
	db := dbManager.DB()
	if err := database.Seed(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize services
	employeeService := services.NewEmployeeService(db)
	teamService := services.NewTeamService(db)
	leaveTypeService := services.NewLeaveTypeService(db)
	holidayService := services.NewHolidayService(db)
	requestService := services.NewRequestService(db)
	balanceService := services.NewBalanceService(db)
	notificationService := services.NewNotificationService(db)
	capacityService := services.NewCapacityService(db)
	vaultService := services.NewVaultService(db, appConfig.VaultDebounce)
	advisorService := services.NewAdvisorService(appConfig.GeminiAPIKey, appConfig.GeminiChatModel, appConfig.GeminiHolidayModel)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(employeeService, balanceService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, vaultService)
	teamHandler := handlers.NewTeamHandler(teamService, vaultService)
	leaveTypeHandler := handlers.NewLeaveTypeHandler(leaveTypeService, vaultService)
	holidayHandler := handlers.NewHolidayHandler(holidayService, advisorService, vaultService)
	requestHandler := handlers.NewRequestHandler(requestService, vaultService)
	balanceHandler := handlers.NewBalanceHandler(balanceService, vaultService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	capacityHandler := handlers.NewCapacityHandler(capacityService)
	vaultHandler := handlers.NewVaultHandler(vaultService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService, balanceService, requestService, leaveTypeService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Vault restore happens from the login screen, before any session exists
	v1.POST("/vault/connect", vaultHandler.ConnectVault)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Own profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.GET("/profile/stats", authHandler.GetProfileStats)

	// Leave requests
	requests := protected.Group("/requests")
	requests.POST("", requestHandler.CreateRequest)
	requests.GET("", requestHandler.ListMyRequests)
	requests.GET("/:id", requestHandler.GetRequest)
	requests.POST("/:id/cancel", requestHandler.CancelRequest)
	// Deciding is open to any authenticated caller; the service grants
	// it to admins and the requester's direct manager.
	requests.POST("/:id/decide", requestHandler.DecideRequest)

	// Leave request administration
	requestsAdmin := requests.Group("/")
	requestsAdmin.Use(middleware.AdminMiddleware())
	requestsAdmin.GET("/all", requestHandler.ListAllRequests)
	requestsAdmin.PUT("/:id", requestHandler.UpdateRequest)
	requestsAdmin.DELETE("/:id", requestHandler.DeleteRequest)
	requestsAdmin.GET("/:id/history", requestHandler.GetDecisionHistory)

	// Leave types
	leaveTypes := protected.Group("/leave-types")
	leaveTypes.GET("", leaveTypeHandler.ListLeaveTypes)
	leaveTypesAdmin := leaveTypes.Group("/")
	leaveTypesAdmin.Use(middleware.AdminMiddleware())
	leaveTypesAdmin.POST("", leaveTypeHandler.CreateLeaveType)
	leaveTypesAdmin.PUT("/:id", leaveTypeHandler.UpdateLeaveType)
	leaveTypesAdmin.DELETE("/:id", leaveTypeHandler.DeleteLeaveType)

	// Public holidays
	holidays := protected.Group("/holidays")
	holidays.GET("", holidayHandler.ListHolidays)
	holidaysAdmin := holidays.Group("/")
	holidaysAdmin.Use(middleware.AdminMiddleware())
	holidaysAdmin.POST("", holidayHandler.CreateHoliday)
	holidaysAdmin.PUT("/:id", holidayHandler.UpdateHoliday)
	holidaysAdmin.DELETE("/:id", holidayHandler.DeleteHoliday)
	holidaysAdmin.POST("/sync", holidayHandler.SyncHolidays)

	// Teams
	teams := protected.Group("/teams")
	teams.GET("", teamHandler.ListTeams)
	teamsAdmin := teams.Group("/")
	teamsAdmin.Use(middleware.AdminMiddleware())
	teamsAdmin.POST("", teamHandler.CreateTeam)
	teamsAdmin.PUT("/:id", teamHandler.UpdateTeam)
	teamsAdmin.DELETE("/:id", teamHandler.DeleteTeam)

	// Employee directory
	employees := protected.Group("/employees")
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/orgchart", employeeHandler.GetOrgChart)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employeesAdmin := employees.Group("/")
	employeesAdmin.Use(middleware.AdminMiddleware())
	employeesAdmin.POST("", employeeHandler.CreateEmployee)
	employeesAdmin.PUT("/:id", employeeHandler.UpdateEmployee)
	employeesAdmin.DELETE("/:id", employeeHandler.DeleteEmployee)

	// Balance ledger
	balance := protected.Group("/balance")
	balance.GET("/history", balanceHandler.GetHistory)
	balanceAdmin := balance.Group("/")
	balanceAdmin.Use(middleware.AdminMiddleware())
	balanceAdmin.POST("/history", balanceHandler.AddChange)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.PUT("/:id/read", notificationHandler.MarkNotificationRead)
	notifications.DELETE("", notificationHandler.ClearNotifications)

	// Capacity planning
	capacity := protected.Group("/capacity")
	capacity.GET("", capacityHandler.GetCapacity)
	capacity.GET("/export", capacityHandler.ExportCapacity)

	// Cloud vault
	vault := protected.Group("/vault")
	vault.GET("/status", vaultHandler.GetVaultStatus)
	vaultAdmin := vault.Group("/")
	vaultAdmin.Use(middleware.AdminMiddleware())
	vaultAdmin.POST("/init", vaultHandler.InitVault)
	vaultAdmin.POST("/push", vaultHandler.PushVault)

	// AI advisor
	protected.POST("/advisor/chat", advisorHandler.Chat)

	log.Infof("Starting Vacationly backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
