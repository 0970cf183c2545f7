package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vacationly/internal/handlers"
	"vacationly/internal/logger"
	"vacationly/internal/middleware"
	"vacationly/internal/models"
	"vacationly/internal/services"
	"vacationly/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine

	employeeService services.EmployeeServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Team{},
		&models.Employee{},
		&models.LeaveType{},
		&models.PublicHoliday{},
		&models.LeaveRequest{},
		&models.BalanceChange{},
		&models.Notification{},
		&models.DecisionLog{},
		&models.VaultSnapshot{},
		&models.Setting{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services. The vault debounce window is long so background pushes
	// never fire mid-test.
	employeeService := services.NewEmployeeService(db)
	teamService := services.NewTeamService(db)
	leaveTypeService := services.NewLeaveTypeService(db)
	holidayService := services.NewHolidayService(db)
	requestService := services.NewRequestService(db)
	balanceService := services.NewBalanceService(db)
	notificationService := services.NewNotificationService(db)
	capacityService := services.NewCapacityService(db)
	vaultService := services.NewVaultService(db, time.Hour)

	// Handlers
	authHandler := handlers.NewAuthHandler(employeeService, balanceService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, vaultService)
	teamHandler := handlers.NewTeamHandler(teamService, vaultService)
	leaveTypeHandler := handlers.NewLeaveTypeHandler(leaveTypeService, vaultService)
	holidayHandler := handlers.NewHolidayHandler(holidayService, services.NewAdvisorService("", "", ""), vaultService)
	requestHandler := handlers.NewRequestHandler(requestService, vaultService)
	balanceHandler := handlers.NewBalanceHandler(balanceService, vaultService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	capacityHandler := handlers.NewCapacityHandler(capacityService)
	vaultHandler := handlers.NewVaultHandler(vaultService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/reset-password", authHandler.ResetPassword)

	v1.POST("/vault/connect", vaultHandler.ConnectVault)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.GET("/profile/stats", authHandler.GetProfileStats)

	requests := protected.Group("/requests")
	requests.POST("", requestHandler.CreateRequest)
	requests.GET("", requestHandler.ListMyRequests)
	requests.GET("/:id", requestHandler.GetRequest)
	requests.POST("/:id/cancel", requestHandler.CancelRequest)
	requests.POST("/:id/decide", requestHandler.DecideRequest)

	requestsAdmin := requests.Group("/")
	requestsAdmin.Use(middleware.AdminMiddleware())
	requestsAdmin.GET("/all", requestHandler.ListAllRequests)
	requestsAdmin.PUT("/:id", requestHandler.UpdateRequest)
	requestsAdmin.DELETE("/:id", requestHandler.DeleteRequest)
	requestsAdmin.GET("/:id/history", requestHandler.GetDecisionHistory)

	leaveTypes := protected.Group("/leave-types")
	leaveTypes.GET("", leaveTypeHandler.ListLeaveTypes)
	leaveTypesAdmin := leaveTypes.Group("/")
	leaveTypesAdmin.Use(middleware.AdminMiddleware())
	leaveTypesAdmin.POST("", leaveTypeHandler.CreateLeaveType)
	leaveTypesAdmin.PUT("/:id", leaveTypeHandler.UpdateLeaveType)
	leaveTypesAdmin.DELETE("/:id", leaveTypeHandler.DeleteLeaveType)

	holidays := protected.Group("/holidays")
	holidays.GET("", holidayHandler.ListHolidays)
	holidaysAdmin := holidays.Group("/")
	holidaysAdmin.Use(middleware.AdminMiddleware())
	holidaysAdmin.POST("", holidayHandler.CreateHoliday)
	holidaysAdmin.PUT("/:id", holidayHandler.UpdateHoliday)
	holidaysAdmin.DELETE("/:id", holidayHandler.DeleteHoliday)

	teams := protected.Group("/teams")
	teams.GET("", teamHandler.ListTeams)
	teamsAdmin := teams.Group("/")
	teamsAdmin.Use(middleware.AdminMiddleware())
	teamsAdmin.POST("", teamHandler.CreateTeam)
	teamsAdmin.PUT("/:id", teamHandler.UpdateTeam)
	teamsAdmin.DELETE("/:id", teamHandler.DeleteTeam)

	employees := protected.Group("/employees")
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/orgchart", employeeHandler.GetOrgChart)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employeesAdmin := employees.Group("/")
	employeesAdmin.Use(middleware.AdminMiddleware())
	employeesAdmin.POST("", employeeHandler.CreateEmployee)
	employeesAdmin.PUT("/:id", employeeHandler.UpdateEmployee)
	employeesAdmin.DELETE("/:id", employeeHandler.DeleteEmployee)

	balance := protected.Group("/balance")
	balance.GET("/history", balanceHandler.GetHistory)
	balanceAdmin := balance.Group("/")
	balanceAdmin.Use(middleware.AdminMiddleware())
	balanceAdmin.POST("/history", balanceHandler.AddChange)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.PUT("/:id/read", notificationHandler.MarkNotificationRead)
	notifications.DELETE("", notificationHandler.ClearNotifications)

	capacity := protected.Group("/capacity")
	capacity.GET("", capacityHandler.GetCapacity)
	capacity.GET("/export", capacityHandler.ExportCapacity)

	vault := protected.Group("/vault")
	vault.GET("/status", vaultHandler.GetVaultStatus)
	vaultAdmin := vault.Group("/")
	vaultAdmin.Use(middleware.AdminMiddleware())
	vaultAdmin.POST("/init", vaultHandler.InitVault)
	vaultAdmin.POST("/push", vaultHandler.PushVault)

	return &testApp{DB: db, Router: router, employeeService: employeeService}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// seedEmployee bootstraps an employee directly through the service layer,
// since the directory has no public registration.
func (app *testApp) seedEmployee(t *testing.T, username string, isAdmin bool) *models.Employee {
	t.Helper()
	emp, err := app.employeeService.Create(services.EmployeeInput{
		Username: username,
		Password: "password123",
		Name:     "Employee " + username,
		Role:     "Specialist",
		IsAdmin:  isAdmin,
	})
	if err != nil {
		t.Fatalf("failed to seed employee %s: %v", username, err)
	}
	return emp
}

// login logs in and returns the access and refresh tokens.
func (app *testApp) login(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}
