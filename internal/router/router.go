package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hrms/internal/auth"
	"hrms/internal/config"
	"hrms/internal/handler"
	"hrms/internal/middleware"
	"hrms/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	departmentHandler *handler.DepartmentHandler,
	designationHandler *handler.DesignationHandler,
	attendanceHandler *handler.AttendanceHandler,
	leaveHandler *handler.LeaveHandler,
	payrollHandler *handler.PayrollHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh-token", authHandler.Refresh)

	// Secured routes (require a valid access token)
	secured := api.Group("", middleware.Authenticate(jwtService))
	admin := middleware.RequireRole(model.RoleAdmin)

	secured.POST("/auth/logout", authHandler.Logout)

	// Employee routes; profile endpoints operate on the authenticated user
	secured.GET("/employees/profile", employeeHandler.GetProfile)
	secured.PUT("/employees/profile", employeeHandler.UpdateProfile)
	secured.GET("/employees", employeeHandler.List)
	secured.GET("/employees/:id", employeeHandler.Get)
	secured.POST("/employees", employeeHandler.Create, admin)
	secured.PUT("/employees/:id", employeeHandler.Update, admin)
	secured.DELETE("/employees/:id", employeeHandler.Delete, admin)

	// Department routes
	secured.GET("/departments", departmentHandler.List)
	secured.GET("/departments/:id", departmentHandler.Get)
	secured.POST("/departments", departmentHandler.Create, admin)
	secured.PUT("/departments/:id", departmentHandler.Update, admin)
	secured.DELETE("/departments/:id", departmentHandler.Delete, admin)

	// Designation routes
	secured.GET("/designations", designationHandler.List)
	secured.GET("/designations/:id", designationHandler.Get)
	secured.POST("/designations", designationHandler.Create, admin)
	secured.PUT("/designations/:id", designationHandler.Update, admin)
	secured.DELETE("/designations/:id", designationHandler.Delete, admin)

	// Attendance routes
	secured.GET("/attendance", attendanceHandler.List)
	secured.GET("/attendance/stats", attendanceHandler.Stats)
	secured.POST("/attendance", attendanceHandler.Create)
	secured.PUT("/attendance/:id", attendanceHandler.Update)

	// Leave routes
	secured.GET("/leaves", leaveHandler.List)
	secured.GET("/leaves/stats", leaveHandler.Stats)
	secured.POST("/leaves", leaveHandler.Create)
	secured.PUT("/leaves/:id/status", leaveHandler.UpdateStatus)

	// Payroll routes
	secured.GET("/payroll", payrollHandler.List)
	secured.GET("/payroll/stats", payrollHandler.Stats)
	secured.POST("/payroll/generate", payrollHandler.Generate)
	secured.PUT("/payroll/:id", payrollHandler.Update)

	// Dashboard
	secured.GET("/dashboard/stats", dashboardHandler.Stats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
