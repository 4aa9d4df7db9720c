package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/atharva12306/ai-ayurvedic-diet/config"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/platform/logger"
)

// Server represents the HTTP server
type Server struct {
	handler http.Handler
	http    *http.Server
	log     *logger.Logger
}

// New wraps handler in an http.Server configured from cfg
func New(cfg *config.Config, handler http.Handler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		handler: handler,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.log.Info("Starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.http.Shutdown(ctx)
}
