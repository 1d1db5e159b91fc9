// Package api provides the HTTP synchronization façade over the daybook
// store.
//
// The façade translates external list/create/update/delete calls into store
// operations, validating inputs before any store call and shaping all
// failures into a uniform JSON error body. Store failures are logged with
// full detail for operators and surfaced to callers as an opaque internal
// error.
package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Config holds server configuration.
type Config struct {
	// Addr to listen on (default: ":8080")
	Addr string

	// Logger for server activity (default: stderr logger)
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:   ":8080",
		Logger: log.Default(),
	}
}

// Server serves the daybook HTTP API.
type Server struct {
	addr     string
	listener net.Listener
	server   *http.Server
	logger   *log.Logger
}

// NewServer creates an API server over the given store and weather source.
// weather may be nil; the weather endpoint then always reports the degraded
// error state.
func NewServer(st TaskStore, weather WeatherSource, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	h := newHandler(st, weather, config.Logger)

	return &Server{
		addr: config.Addr,
		server: &http.Server{
			Handler:      h,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: config.Logger,
	}
}

// Start begins listening and serving requests in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	go func() {
		s.logger.Printf("API server listening on %s", ln.Addr())
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server, waiting up to 5 seconds for
// in-flight requests.
func (s *Server) Stop() error {
	s.logger.Println("Stopping API server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Println("API server stopped")
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}
