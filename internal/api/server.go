package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iamthegreatdestroyer/hyperbox/internal/config"
	"github.com/iamthegreatdestroyer/hyperbox/internal/middleware"
	"github.com/iamthegreatdestroyer/hyperbox/internal/stats"
	"github.com/iamthegreatdestroyer/hyperbox/internal/ws"
)

// Server exposes the stats engine over HTTP and WebSocket
type Server struct {
	logger *zap.Logger
	config *config.Config
	router chi.Router
	stats  *stats.Service
	wsHub  *ws.Hub
}

// NewServer creates a new API server around the stats service
func NewServer(logger *zap.Logger, cfg *config.Config, statsService *stats.Service) *Server {
	s := &Server{
		logger: logger,
		config: cfg,
		router: chi.NewRouter(),
		stats:  statsService,
		wsHub:  ws.NewHub(logger),
	}

	// Each committed cycle goes out to live subscribers
	statsService.OnCycle(func(update stats.CycleUpdate) {
		s.wsHub.Broadcast("cycle", update)
	})

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Start launches the server's background components
func (s *Server) Start(ctx context.Context) error {
	go s.wsHub.Run()
	return nil
}

// Stop shuts down the server's background components
func (s *Server) Stop() {
	s.wsHub.Stop()
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(30 * time.Second))

	s.router.Use(middleware.RequestIDResponseMiddleware)
	s.router.Use(middleware.PrometheusMiddleware)

	limiter := middleware.NewRateLimiter(s.config.RateLimits.RequestsPerSecond, s.config.RateLimits.Burst)
	s.router.Use(limiter.Handler)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/version", s.handleVersion)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/series/system", s.handleSystemSeries)
		r.Get("/series/containers", s.handleSeriesContainers)
		r.Get("/series/containers/{id}", s.handleContainerSeries)
		r.Get("/containers", s.handleLatestSnapshots)
		r.Get("/pressure", s.handlePressure)

		r.Route("/stream", func(r chi.Router) {
			r.Post("/start", s.handleStreamStart)
			r.Post("/stop", s.handleStreamStop)
			r.Get("/status", s.handleStreamStatus)
			r.Get("/ws", s.handleStreamWS)
		})
	})
}
