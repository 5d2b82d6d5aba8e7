// Package http provides the HTTP server and route wiring.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/paservices/auth-service/internal/auth/http"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
	"github.com/paservices/auth-service/internal/config"
	"github.com/paservices/auth-service/internal/metrics"
)

// Server represents the main HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with all middleware and routes.
//
// The token endpoint is unauthenticated and optionally rate limited per IP.
// Admin routes require a Bearer token and per-route permissions. The /metrics
// endpoint is deliberately NOT registered here; it lives on the separate
// metrics server so it is never exposed on the public port.
func (s *Server) SetupRouter(
	cfg *config.Config,
	metricsProvider *metrics.Provider,
	tokenUseCase authUseCase.TokenUseCase,
	tokenHandler *authHTTP.TokenHandler,
	clientHandler *authHTTP.ClientHandler,
	rbacHandler *authHTTP.RBACHandler,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	tokenRoutes := []gin.HandlerFunc{}
	if cfg.RateLimitTokenEnabled {
		tokenRoutes = append(tokenRoutes, authHTTP.TokenRateLimitMiddleware(
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokenRoutes = append(tokenRoutes, tokenHandler.IssueTokenHandler)
	router.POST("/auth/token", tokenRoutes...)

	admin := router.Group("/admin")
	admin.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, s.logger))
	{
		manage := authHTTP.RequirePermission("role:admin_manage", s.logger)
		admin.POST("/clients", manage, clientHandler.CreateHandler)
		admin.GET("/clients", manage, clientHandler.ListHandler)
		admin.GET("/clients/:id", manage, clientHandler.GetHandler)
		admin.PUT("/clients/:id", manage, clientHandler.UpdateHandler)
		admin.POST("/clients/:id/roles", manage, clientHandler.AssignRoleHandler)
		admin.GET("/clients/:id/access", manage, clientHandler.GetAccessHandler)

		admin.GET("/roles", authHTTP.RequirePermission("roles:read", s.logger), rbacHandler.ListRolesHandler)
		admin.GET("/permissions", authHTTP.RequirePermission("permissions:read", s.logger), rbacHandler.ListPermissionsHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the configured http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router != nil {
		s.server.Handler = s.router
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// is the only hard dependency; the identity provider is checked lazily per
// request and does not gate readiness.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
