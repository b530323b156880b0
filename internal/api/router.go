package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/owaspcebu/ctf-platform/docs"
	"github.com/owaspcebu/ctf-platform/internal/api/handler"
	"github.com/owaspcebu/ctf-platform/internal/api/middleware"
	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

// Dependencies carries everything the HTTP layer needs. Health maps a
// dependency name to its ping; Registry defaults to the global Prometheus
// registry when nil.
type Dependencies struct {
	Auth        ports.AuthService
	Challenges  ports.ChallengeService
	Scoring     ports.ScoringService
	Leaderboard ports.LeaderboardService
	Admin       ports.AdminService

	JWTSecret string
	Health    map[string]handler.Pinger
	Registry  *prometheus.Registry
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metricsMiddleware(deps.Registry))

	// --- Observability (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Health).Readiness)
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Member routes ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	challengeHandler := handler.NewChallengeHandler(deps.Challenges, deps.Scoring, deps.Leaderboard)
	v1.GET("/challenges", challengeHandler.List)
	v1.GET("/challenges/:id", challengeHandler.Get)
	v1.POST("/challenges/:id/submit", challengeHandler.Submit)
	v1.GET("/challenges/:id/solvers", challengeHandler.Solvers)

	leaderboardHandler := handler.NewLeaderboardHandler(deps.Leaderboard)
	v1.GET("/leaderboard", leaderboardHandler.Global)

	// --- Admin routes ---
	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))

	adminHandler := handler.NewAdminHandler(deps.Challenges, deps.Admin)
	admin.GET("/challenges", adminHandler.ListChallenges)
	admin.POST("/challenges", adminHandler.CreateChallenge)
	admin.GET("/challenges/:id", adminHandler.GetChallenge)
	admin.PUT("/challenges/:id", adminHandler.UpdateChallenge)
	admin.DELETE("/challenges/:id", adminHandler.DeleteChallenge)
	admin.GET("/stats", adminHandler.Stats)
	admin.POST("/promote", adminHandler.Promote)

	return e
}

// requestLogger sends echo access logs through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      skipProbes,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace:                 "ctf",
		Subsystem:                 "http",
		Skipper:                   skipProbes,
		DoNotUseRequestPathFor404: true,
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func skipProbes(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}
