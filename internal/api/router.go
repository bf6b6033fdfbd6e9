package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldtrace/maintenance-api/internal/api/handler"
	"github.com/fieldtrace/maintenance-api/internal/api/middleware"
	"github.com/fieldtrace/maintenance-api/internal/core/auth"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/service"
	mongorepo "github.com/fieldtrace/maintenance-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/fieldtrace/maintenance-api/internal/infrastructure/db/redis"
)

// RouterDeps carries everything the router needs to assemble the service
// graph.
type RouterDeps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Signing    auth.SigningConfig
	Notifier   middleware.SecurityNotifier
	Log        zerolog.Logger
	Production bool
}

// NewRouter builds the Echo instance with the full route table registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("maintenance"))

	// --- Dependencies ---
	hasher := auth.NewHasher(0)
	issuer := auth.NewIssuer(deps.Signing, hasher)

	userRepo := mongorepo.NewUserRepository(deps.DB)
	auditRepo := mongorepo.NewAuditRepository(deps.DB)
	clientRepo := mongorepo.NewClientRepository(deps.DB)
	projectRepo := mongorepo.NewProjectRepository(deps.DB)
	workOrderRepo := mongorepo.NewWorkOrderRepository(deps.DB)

	var throttle service.LoginThrottle
	if deps.Redis != nil {
		throttle = redisinfra.NewLoginThrottle(deps.Redis, 0, 0)
	}

	auditService := service.NewAuditService(auditRepo, deps.Log)
	authService := service.NewAuthService(userRepo, issuer, hasher, throttle, deps.Notifier, deps.Log)
	userService := service.NewUserService(userRepo, hasher, auditService, deps.Log)
	clientService := service.NewClientService(clientRepo, auditService, deps.Log)
	projectService := service.NewProjectService(projectRepo, clientRepo, auditService, deps.Log)
	workOrderService := service.NewWorkOrderService(workOrderRepo, auditService, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	workOrderHandler := handler.NewWorkOrderHandler(workOrderService)
	historyHandler := handler.NewHistoryHandler(auditService)

	authGate := middleware.Auth(issuer, userRepo, deps.Notifier, deps.Log)
	adminOnly := middleware.RBAC(deps.Notifier, deps.Log, domain.RoleAdmin)
	managers := middleware.RBAC(deps.Notifier, deps.Log, domain.RoleAdmin, domain.RoleSupervisor)
	fieldStaff := middleware.RBAC(deps.Notifier, deps.Log, domain.RoleAdmin, domain.RoleSupervisor, domain.RoleTechnician)
	anyAuthenticated := middleware.RBAC(deps.Notifier, deps.Log)

	// --- Operational surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public routes ---
	e.POST("/v1/authn/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authGate)

	users := v1.Group("/users")
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.PUT("/:id/status", userHandler.ChangeStatus, adminOnly)
	users.PUT("/:id/password", userHandler.ChangePassword, anyAuthenticated)

	clients := v1.Group("/clients", managers)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	projects := v1.Group("/projects", managers)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	orders := v1.Group("/work-orders")
	orders.POST("", workOrderHandler.Create, managers)
	orders.GET("/:id", workOrderHandler.Get, fieldStaff)
	orders.PUT("/:id", workOrderHandler.Update, managers)
	orders.PUT("/:id/status", workOrderHandler.ChangeStatus, fieldStaff)
	orders.DELETE("/:id", workOrderHandler.Delete, adminOnly)

	// History endpoints, one per tracked entity type.
	v1.GET("/users/:id/history", historyHandler.For(domain.EntityUser), adminOnly)
	v1.GET("/clients/:id/history", historyHandler.For(domain.EntityClient), managers)
	v1.GET("/projects/:id/history", historyHandler.For(domain.EntityProject), managers)
	v1.GET("/points/:id/history", historyHandler.For(domain.EntityPoint), managers)
	v1.GET("/materials/:id/history", historyHandler.For(domain.EntityMaterial), managers)
	v1.GET("/work-orders/:id/history", historyHandler.For(domain.EntityWorkOrder), managers)

	return e
}
