// Package httpapi exposes the service's HTTP surface: the subscriber
// endpoints, the on-demand analysis trigger, the snapshot reads, and the
// operational health, readiness, and metrics routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
	"github.com/hurricanecontrol/bulletin-notifier/internal/observability"
)

// Registry is the subscriber management surface used by the handlers.
type Registry interface {
	Register(ctx context.Context, contact, location string) (domain.Subscriber, error)
	Unsubscribe(ctx context.Context, contact string) error
}

// Analyzer triggers analysis runs and reports readiness.
type Analyzer interface {
	Run(ctx context.Context) ([]domain.Outcome, error)
	CheckReadiness() error
}

// SnapshotReader serves the persisted snapshots of the latest run.
type SnapshotReader interface {
	GetSummary(ctx context.Context) (doc domain.SummaryDocument, found bool, err error)
	GetOutlookImage(ctx context.Context) (data []byte, contentType string, found bool, err error)
}

// Server wraps the HTTP listener and its routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and the listener.
func NewServer(
	addr string,
	reg Registry,
	analyzer Analyzer,
	snapshots SnapshotReader,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	// Wrong-method requests on the API answer 400, not 405.
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported method"})
	})

	h := &handlers{
		registry:  reg,
		analyzer:  analyzer,
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
	}

	v1 := engine.Group("/v1")
	v1.POST("/register", h.register)
	v1.POST("/unsubscribe", h.unsubscribe)
	v1.POST("/analyze", h.analyze)
	v1.GET("/summary", h.summary)
	v1.GET("/outlook.png", h.outlookImage)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		if err := analyzer.CheckReadiness(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
