// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/guard"
	"caricom_connects_backend/internal/jobs"
	"caricom_connects_backend/internal/middleware"
	"caricom_connects_backend/internal/session"
	"caricom_connects_backend/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger
	sessions   session.Service

	// Handlers
	authHandler          *web.AuthHandler
	pagesHandler         *web.PagesHandler
	notificationsHandler *web.NotificationsHandler

	// Jobs
	sessionRefreshJob *jobs.SessionRefreshJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *web.AuthHandler,
	pagesHandler *web.PagesHandler,
	notificationsHandler *web.NotificationsHandler,
	sessionRefreshJob *jobs.SessionRefreshJob,
	sessions session.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	if err := web.RegisterValidations(); err != nil {
		return nil, fmt.Errorf("registering request validations: %w", err)
	}
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.PublicOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("The requested endpoint does not exist."))
	})
	router.NoMethod(func(c *gin.Context) {
		common.RespondWithError(c, common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			"The method is not allowed for the requested URL."))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "CARICOM Connects gateway is healthy!"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	notificationsHandler.RegisterRoutes(v1.Group("/notifications"))

	// Page routes with their guards.
	publicOnly := guard.PublicOnly(sessions, logger)
	privateOnly := guard.PrivateOnly(sessions, logger)
	pagesHandler.RegisterRoutes(router, publicOnly, privateOnly)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:           httpServer,
		router:               router,
		cfg:                  cfg,
		logger:               logger,
		sessions:             sessions,
		authHandler:          authHandler,
		pagesHandler:         pagesHandler,
		notificationsHandler: notificationsHandler,
		sessionRefreshJob:    sessionRefreshJob,
	}, nil
}

// Start resolves the initial session state and serves HTTP. The initial
// check runs in the background so a slow provider cannot delay startup; the
// guards answer with a loading placeholder until it settles.
func (s *Server) Start() error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ProviderTimeout)
		defer cancel()
		snap := s.sessions.CheckSession(ctx)
		s.logger.Info("Initial session check resolved", zap.String("state", string(snap.State)))
	}()

	if s.sessionRefreshJob != nil {
		if err := s.sessionRefreshJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start session refresh job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

// Shutdown stops the refresh job and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.sessionRefreshJob != nil {
		s.sessionRefreshJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
