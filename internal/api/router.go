// Package api assembles the HTTP surface: routes, middleware, and the
// central error handler.
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/taskflow/taskflow-api/internal/api/handler"
	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/service"
	"github.com/taskflow/taskflow-api/internal/infrastructure/db/sqlite"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(store *sqlite.Store, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskflow"))

	// --- Dependencies ---
	users := store.Users()
	projects := store.Projects()
	tasks := store.Tasks()

	authService := service.NewAuthService(users, jwtSecret, SessionTTL, log)
	userService := service.NewUserService(users, log)
	projectService := service.NewProjectService(projects, users, log)
	taskService := service.NewTaskService(tasks, projects, users, log)

	authHandler := handler.NewAuthHandler(authService, userService, SessionTTL)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(store)

	auth := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, middleware.RateLimit(middleware.LoginLimit))
	e.POST("/auth/register", authHandler.Register, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Users (admin-managed; managers read the list for assignment pickers) ---
	u := e.Group("/users", auth)
	u.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	u.POST("", userHandler.Create, middleware.RBAC(domain.RoleAdmin))
	u.PUT("/:id", userHandler.Update, middleware.RBAC(domain.RoleAdmin))
	u.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Projects (list is visible to every authenticated role, scoped) ---
	p := e.Group("/projects", auth)
	p.GET("", projectHandler.List)
	p.POST("", projectHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	p.PUT("/:id", projectHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	p.DELETE("/:id", projectHandler.Delete, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	p.POST("/:id/members", projectHandler.AddMember, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	p.DELETE("/:id/members/:userId", projectHandler.RemoveMember, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))

	// --- Tasks (update is open to every role; field rules applied per record) ---
	t := e.Group("/tasks", auth)
	t.GET("", taskHandler.List)
	t.POST("", taskHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	t.PATCH("/:id", taskHandler.Update)
	t.DELETE("/:id", taskHandler.Delete, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)   // readiness – is the database up?
	e.GET("/metrics", echoprometheus.NewHandler())    // prometheus scrape target
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
