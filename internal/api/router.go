package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/synchub/attendance/docs"
	"github.com/synchub/attendance/internal/api/handler"
	"github.com/synchub/attendance/internal/api/middleware"
	"github.com/synchub/attendance/internal/core/ports"
	"github.com/synchub/attendance/pkg/logger"
)

// Dependencies are the services and settings the HTTP layer is built from.
type Dependencies struct {
	Log          zerolog.Logger
	JWTSecret    string
	TokenTTL     time.Duration
	SecureCookie bool
	Policy       middleware.Decider
	Renderer     echo.Renderer

	Scan      ports.ScanService
	Reports   ports.ReportService
	Officers  ports.IdentityService
	Auth      ports.AuthService
	Inventory ports.InventoryService
	Profiles  ports.ProfileService

	Readiness []handler.DependencyCheck

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = deps.Renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(logger.Component(deps.Log, "http")))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))

	authRequired := middleware.Auth(deps.JWTSecret)
	// Admin views: anonymous callers reach the policy and get the denial page.
	gated := []echo.MiddlewareFunc{
		middleware.OptionalAuth(deps.JWTSecret),
		middleware.RBAC(deps.Policy),
	}

	// --- Scan kiosk (no auth required) ---
	scanHandler := handler.NewScanHandler(deps.Scan, deps.Log)
	e.GET("/rfid_login/", scanHandler.Page)
	e.POST("/rfid_login/", scanHandler.Scan)

	// --- Time log and reports ---
	reportHandler := handler.NewReportHandler(deps.Reports)
	e.GET("/rfid_login/time_log/", reportHandler.TimeLog, gated...)
	e.DELETE("/rfid_login/time_log/:id", reportHandler.DeleteLog, gated...)
	e.GET("/rfid_login/time_reports/", reportHandler.Reports, gated...)
	e.GET("/rfid_login/time_reports/export/:format", reportHandler.Export, gated...)

	// --- Officer management ---
	officerHandler := handler.NewOfficerHandler(deps.Officers)
	e.GET("/rfid_login/officers/", officerHandler.List, gated...)
	e.POST("/rfid_login/officers/", officerHandler.Create, gated...)
	e.PUT("/rfid_login/officers/:id", officerHandler.Update, gated...)
	e.DELETE("/rfid_login/officers/:id", officerHandler.Delete, gated...)

	// --- Accounts ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.TokenTTL, deps.SecureCookie)
	e.POST("/api/signup", authHandler.Signup)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)

	// --- Inventory (reads are public) ---
	inventoryHandler := handler.NewInventoryHandler(deps.Inventory)
	e.GET("/inventory/", inventoryHandler.List)
	e.POST("/inventory/", inventoryHandler.Create, authRequired)
	e.PUT("/inventory/:id", inventoryHandler.Update, authRequired)
	e.DELETE("/inventory/:id", inventoryHandler.Delete, authRequired)

	// --- Profile ---
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	e.GET("/profile/", profileHandler.Get, authRequired)
	e.PUT("/profile/", profileHandler.Update, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
