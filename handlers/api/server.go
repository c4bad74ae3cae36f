package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aditya-niranjan/smart-summarizer/config"
	"github.com/aditya-niranjan/smart-summarizer/middleware"
	"github.com/aditya-niranjan/smart-summarizer/services/document"
	"github.com/aditya-niranjan/smart-summarizer/services/summary"
	"github.com/aditya-niranjan/smart-summarizer/services/video"
	"github.com/aditya-niranjan/smart-summarizer/validation"
)

type Server struct {
	summarize        *SummarizeHandler
	geminiConfigured bool
	config           *config.Config
	logger           *logrus.Logger
	server           *http.Server
	startTime        time.Time
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided services and options
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// WithServices sets up the handlers with the provided services
func WithServices(videoSvc video.Service, summarySvc summary.Service, extractor *document.Extractor) ServerOption {
	return func(s *Server) {
		validator := validation.NewValidator(s.config)
		s.summarize = NewSummarizeHandler(videoSvc, summarySvc, extractor, validator, s.config.TempDir, s.logger)
		s.geminiConfigured = summarySvc.Configured()
	}
}

// WithLogger sets a custom logger for the server
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// routes sets up all the routes for the API
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /summarize/youtube", s.summarize.HandleYouTube)
	mux.HandleFunc("POST /summarize/pdf", s.summarize.HandlePDF)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.middleware(mux)
}

// middleware sets up the middleware chain
func (s *Server) middleware(handler http.Handler) http.Handler {
	mw := s.config.Middleware

	var middlewares []func(http.Handler) http.Handler
	if mw.EnableRecover {
		middlewares = append(middlewares, middleware.Recovery(s.logger))
	}
	if mw.EnableRequestID {
		middlewares = append(middlewares, middleware.RequestID())
	}
	if mw.EnableLogger {
		middlewares = append(middlewares, middleware.Logging(s.logger))
	}
	if mw.EnableCORS {
		middlewares = append(middlewares, middleware.CORS(s.config.CORS))
	}
	if mw.EnableTimeout {
		middlewares = append(middlewares, middleware.Timeout(s.config.RequestTimeout))
	}
	if mw.EnableRateLimit && s.config.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(
			s.config.RateLimit.RequestsPerMinute,
			s.config.RateLimit.BurstSize,
		)
		middlewares = append(middlewares, rateLimiter.Middleware)
	}
	if s.config.MaxConcurrentRequests > 0 {
		middlewares = append(middlewares, middleware.MaxConcurrent(s.config.MaxConcurrentRequests))
	}

	return middleware.Chain(handler, middlewares...)
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":            "ok",
		"timestamp":         time.Now().UTC(),
		"version":           s.config.Version,
		"uptime":            time.Since(s.startTime).String(),
		"gemini_configured": s.geminiConfigured,
	}

	if s.config.Debug {
		status["debug"] = true
		status["goroutines"] = runtime.NumGoroutine()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status["memory"] = map[string]interface{}{
			"allocated": m.Alloc,
			"total":     m.TotalAlloc,
			"system":    m.Sys,
			"gc_cycles": m.NumGC,
		}
	}

	respondJSON(w, r, http.StatusOK, status)
}
