// Package server exposes board classification and hand gating over HTTP
// and websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/tagpoker/internal/protocol"
)

// Config configures a Server.
type Config struct {
	Addr        string
	IdleTimeout time.Duration // close websocket clients silent for this long; 0 disables
	Strategy    string        // default strategy for check requests
	Logger      *log.Logger
	Clock       quartz.Clock
}

// Server serves the classification API.
type Server struct {
	config   Config
	service  *Service
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu          sync.Mutex
	connections map[*Connection]struct{}
}

// New creates a server.
func New(config Config) (*Server, error) {
	service, err := NewService(config.Strategy)
	if err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	return &Server{
		config:  config,
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      config.Logger.WithPrefix("server"),
		clock:       config.Clock,
		connections: make(map[*Connection]struct{}),
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/classify", s.handleRequest(protocol.TypeClassify))
		r.Post("/check", s.handleRequest(protocol.TypeCheck))
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	s.closeConnections()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ConnectionCount returns the number of open websocket clients.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

func (s *Server) register(c *Connection) {
	s.mu.Lock()
	s.connections[c] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Debug("Client connected", "total", total)
}

func (s *Server) unregister(c *Connection) {
	s.mu.Lock()
	delete(s.connections, c)
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Debug("Client disconnected", "total", total)
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close() // Ignore close errors during shutdown
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": s.ConnectionCount(),
	})
}

// handleRequest serves a JSON request of the given type.
func (s *Server) handleRequest(typ string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req protocol.Request
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize))
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, protocol.NewError("", protocol.CodeBadRequest, err.Error()))
			return
		}
		req.Type = typ

		switch res := s.service.Handle(&req).(type) {
		case *protocol.Error:
			writeJSON(w, http.StatusUnprocessableEntity, res)
		default:
			writeJSON(w, http.StatusOK, res)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// The idle timer starts before the upgrade completes so a client that
	// never speaks is still reaped.
	idle := newIdleTimer(s.clock, s.config.IdleTimeout)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		idle.Stop()
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.service, s.logger, idle)
	s.register(client)
	go func() {
		client.Run()
		s.unregister(client)
	}()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.clock.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", s.clock.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
