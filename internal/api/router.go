package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/K-HALID007/shipment-tracking-api/internal/api/handler"
	"github.com/K-HALID007/shipment-tracking-api/internal/api/middleware"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

// Deps carries everything the router needs. Construction of services stays
// in main so lifecycle concerns (dispatcher startup, store connections) are
// owned in one place.
type Deps struct {
	Shipments ports.ShipmentService
	Reports   ports.ReportService
	Admin     ports.AdminService
	Auth      ports.AuthService

	DB        *mongo.Database
	RDB       *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("tracking"))

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(deps.Shipments)
	reportHandler := handler.NewReportHandler(deps.Reports)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	authHandler := handler.NewAuthHandler(deps.Auth)
	healthHandler := handler.NewHealthHandler(deps.DB, deps.RDB)

	authRequired := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated shipment routes ---
	v1 := e.Group("/v1", authRequired)

	v1.POST("/shipments", shipmentHandler.Create)
	v1.GET("/shipments", shipmentHandler.ListMine)
	v1.GET("/shipments/:tracking_id", shipmentHandler.Get)
	v1.GET("/shipments/:tracking_id/verify", shipmentHandler.Verify)
	v1.DELETE("/shipments/:tracking_id", shipmentHandler.Delete)

	// --- Admin routes ---
	admin := v1.Group("/admin", adminOnly)

	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/shipments/recent", adminHandler.RecentShipments)
	admin.GET("/revenue", adminHandler.Revenue)
	admin.PATCH("/shipments/:tracking_id/status", shipmentHandler.UpdateStatus)
	admin.GET("/reports", reportHandler.Generate)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/active", adminHandler.SetUserActive)
	admin.PATCH("/users/:id/role", adminHandler.SetUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	return e
}
