package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/metrics"
	"github.com/entrygroup/gallery/internal/service"
)

// Server represents the HTTP server
type Server struct {
	handler *Handler
	server  *http.Server
	logger  *zap.Logger
	port    string
}

// NewServer creates a new HTTP server. The metrics set may be nil, in
// which case no /metrics endpoint is mounted.
func NewServer(groups service.GroupService, m *metrics.Metrics, logger *zap.Logger, port string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(groups, logger)

	mux := http.NewServeMux()

	// JSON API endpoints
	mux.HandleFunc("/api/groups", handler.CreateGroupAPI)
	mux.HandleFunc("/api/groups/", handler.GetGroupAPI)

	// HTML surface
	mux.HandleFunc("/create", handler.CreateGroup)
	mux.HandleFunc("/", handler.Root)

	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	finalHandler := RequestLogging(logger)(mux)

	server := &http.Server{
		Addr:        ":" + port,
		Handler:     finalHandler,
		ReadTimeout: 10 * time.Second,
		// Group-page rendering performs remote calls per item, so the
		// write timeout is generous compared to the read timeout.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		handler: handler,
		server:  server,
		logger:  logger,
		port:    port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

// Port returns the server port
func (s *Server) Port() string {
	return s.port
}

// Handler returns the server handler (useful for testing)
func (s *Server) Handler() *Handler {
	return s.handler
}
