package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/crossplay/xwordgen/internal/auth"
	"github.com/crossplay/xwordgen/internal/middleware"
	"github.com/crossplay/xwordgen/internal/realtime"
	"github.com/crossplay/xwordgen/internal/store"
	"github.com/gin-gonic/gin"
)

// ServerConfig configures the serve subcommand's HTTP service.
type ServerConfig struct {
	Addr            string
	AuthService     *auth.Service
	AdminSecretHash string // bcrypt hash checked by POST /auth/token
	Store           *store.Database
}

// Server is the running HTTP service: a gin router, the job manager
// driving it, and the realtime hub feeding its websocket endpoint.
type Server struct {
	httpServer *http.Server
	jobs       *JobManager
	hub        *realtime.Hub
}

// NewServer builds the gin router and wraps it in an http.Server, ready
// for Start.
func NewServer(cfg ServerConfig) *Server {
	hub := realtime.NewHub()
	jobs := NewJobManager(hub, cfg.Store)
	handlers := NewHandlers(jobs)
	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthService)

	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.PerformanceMonitor())

	router.GET("/health", Health)
	router.GET("/metrics", Metrics)
	router.POST("/auth/token", IssueToken(cfg.AuthService, cfg.AdminSecretHash))

	fills := router.Group("/fills")
	fills.Use(authMiddleware.RequireAuth())
	{
		fills.POST("", handlers.SubmitFill)
		fills.GET("/:id", handlers.GetFill)
	}
	// The websocket handshake carries no body for a bearer header, so
	// subscription accepts a ?token= query parameter instead, since the
	// browser websocket API cannot set custom headers.
	router.GET("/fills/:id/ws", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		if _, err := cfg.AuthService.ValidateToken(token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		handlers.SubscribeFill(c)
	})

	return &Server{
		httpServer: &http.Server{Addr: cfg.Addr, Handler: router},
		jobs:       jobs,
		hub:        hub,
	}
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully with a 5-second drain.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
