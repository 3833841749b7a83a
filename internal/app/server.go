// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"adventure_backend/internal/account"
	"adventure_backend/internal/avatar"
	"adventure_backend/internal/config"
	"adventure_backend/internal/jobs"
	"adventure_backend/internal/middleware"
	"adventure_backend/internal/profile"
	"adventure_backend/internal/reward"
	"adventure_backend/internal/search"
	"adventure_backend/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler mounted under /api/v1.
type Handlers struct {
	Account *account.Handler
	Profile *profile.Handler
	Avatar  *avatar.Handler
	Reward  *reward.Handler
	Search  *search.Handler
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	orphanReportJob *jobs.OrphanReportJob
	indexer         *search.Indexer
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	verifier shared.TokenVerifier,
	orphanReportJob *jobs.OrphanReportJob,
	indexer *search.Indexer,
) (*Server, error) {
	router := NewRouter(cfg, logger, handlers, verifier)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		cfg:             cfg,
		logger:          logger,
		orphanReportJob: orphanReportJob,
		indexer:         indexer,
	}, nil
}

// NewRouter builds the gin engine with global middleware and all routes.
func NewRouter(cfg *config.Config, logger *zap.Logger, h Handlers, verifier shared.TokenVerifier) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(verifier, logger.Named("AuthMiddleware"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Adventure API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	h.Account.RegisterRoutes(v1, authMW)
	h.Profile.RegisterRoutes(v1, authMW)
	h.Avatar.RegisterRoutes(v1)
	h.Reward.RegisterRoutes(v1, authMW)
	h.Search.RegisterRoutes(v1, authMW)

	return router
}

func (s *Server) Start() error {
	if s.indexer != nil && s.indexer.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.indexer.EnsureIndex(ctx); err != nil {
			s.logger.Error("Failed to create profiles index; search may return errors", zap.Error(err))
		}
		cancel()
	}

	if s.orphanReportJob != nil {
		if err := s.orphanReportJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start orphan report job", zap.Error(err))
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
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.orphanReportJob != nil {
		s.orphanReportJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
