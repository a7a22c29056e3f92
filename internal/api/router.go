package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/schoolevents/eventhub/internal/api/handler"
	"github.com/schoolevents/eventhub/internal/api/middleware"
	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Log          zerolog.Logger
	JWTSecret    string
	Denylist     ports.TokenDenylist
	Resolver     ports.RoleResolver
	Auth         ports.AuthService
	Events       ports.EventService
	Registration ports.RegistrationService
	Reminders    ports.ReminderService
	Assistant    ports.AssistantService
	Admin        ports.AdminService
	HealthChecks []handler.DependencyCheck
	// Registry receives the HTTP collectors and backs /metrics. Nil uses the
	// prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "eventhub",
		Registerer: registerer,
	}))

	// --- Middleware chains ---
	identity := middleware.Identity(deps.Resolver)
	guest := []echo.MiddlewareFunc{middleware.OptionalAuth(deps.JWTSecret, deps.Denylist, deps.Log), identity}
	member := []echo.MiddlewareFunc{middleware.Auth(deps.JWTSecret, deps.Denylist, deps.Log), identity}
	members := chain(member, middleware.Members())
	staff := chain(member, middleware.Staff())
	students := chain(member, middleware.RBAC(domain.RoleStudent))
	admins := chain(member, middleware.RBAC(domain.RoleAdmin))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	eventHandler := handler.NewEventHandler(deps.Events, deps.Assistant)
	registrationHandler := handler.NewRegistrationHandler(deps.Registration)
	reminderHandler := handler.NewReminderHandler(deps.Reminders, deps.Assistant)
	assistantHandler := handler.NewAssistantHandler(deps.Assistant)
	adminHandler := handler.NewAdminHandler(deps.Admin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/signout", authHandler.SignOut, member...)
	e.GET("/me", authHandler.Me, guest...)

	v1 := e.Group("/v1")

	// --- Event catalog ---
	v1.GET("/events", eventHandler.ListOpen, guest...)
	v1.GET("/events/all", eventHandler.ListAll, staff...)
	v1.GET("/events/mine", eventHandler.ListMine, staff...)
	v1.POST("/events", eventHandler.Create, staff...)
	v1.DELETE("/events/:id", eventHandler.Delete, staff...)
	v1.POST("/events/draft-description", eventHandler.DraftDescription, staff...)

	// --- Registration ledger ---
	v1.GET("/registrations/available", registrationHandler.ListAvailable, students...)
	v1.GET("/registrations", registrationHandler.ListRegistered, students...)
	v1.POST("/registrations", registrationHandler.Register, students...)

	// --- Reminders ---
	v1.GET("/reminders", reminderHandler.List, members...)
	v1.POST("/reminders", reminderHandler.Create, members...)
	v1.PUT("/reminders/:id", reminderHandler.Update, members...)
	v1.DELETE("/reminders/:id", reminderHandler.Delete, members...)
	v1.POST("/reminders/draft-note", reminderHandler.DraftNote, members...)

	// --- Assistant ---
	v1.POST("/assistant/chat", assistantHandler.Chat, guest...)

	// --- Administration ---
	v1.GET("/admin/users", adminHandler.ListUsers, admins...)
	v1.DELETE("/admin/users/:id", adminHandler.DeleteUser, admins...)
	v1.GET("/admin/analytics", adminHandler.Analytics, admins...)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func chain(base []echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

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
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
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
