package main

import (
	"log"
	"net/http"

	_ "hrms/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"hrms/internal/auth"
	"hrms/internal/cache"
	"hrms/internal/config"
	"hrms/internal/db"
	"hrms/internal/handler"
	"hrms/internal/model"
	"hrms/internal/repository"
	"hrms/internal/router"
	"hrms/internal/service"
)

// @title HRMS API
// @version 1.0
// @description HR management API with employee records, attendance, leave requests, payroll, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Department{},
		&model.Designation{},
		&model.User{},
		&model.Attendance{},
		&model.Leave{},
		&model.Payroll{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	departmentRepo := repository.NewDepartmentRepository(gormDB)
	designationRepo := repository.NewDesignationRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	leaveRepo := repository.NewLeaveRepository(gormDB)
	payrollRepo := repository.NewPayrollRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTRefreshSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	employeeService := service.NewEmployeeService(userRepo)
	departmentService := service.NewDepartmentService(departmentRepo, userRepo, cacheClient)
	designationService := service.NewDesignationService(designationRepo, departmentRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, cacheClient)
	leaveService := service.NewLeaveService(leaveRepo, attendanceRepo, userRepo, cacheClient)
	payrollService := service.NewPayrollService(payrollRepo, userRepo, cacheClient)
	dashboardService := service.NewDashboardService(userRepo, departmentRepo, leaveRepo, attendanceRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	designationHandler := handler.NewDesignationHandler(designationService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	payrollHandler := handler.NewPayrollHandler(payrollService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		departmentHandler,
		designationHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		dashboardHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
