package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/formd/formd/pkg/config"
	"github.com/formd/formd/pkg/dispatch"
	"github.com/formd/formd/pkg/logging"
)

// ErrPortInUse is returned by Start when the configured port is already
// bound by another process.
var ErrPortInUse = errors.New("address already in use")

// Server is the formd HTTP server.
type Server struct {
	cfg        *config.ServerConfig
	dispatcher dispatch.Dispatcher
	handler    *FormHandler
	log        *slog.Logger
	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	running    bool
	startTime  time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a new Server with the given configuration and
// dispatch variant. The dispatcher is chosen once by the caller and shared
// read-only across all requests.
func NewServer(cfg *config.ServerConfig, dispatcher dispatch.Dispatcher, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.DefaultServerConfig()
	}

	s := &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = NewFormHandler(dispatcher, cfg.StaticDir)
	s.handler.SetLogger(s.log)

	return s
}

// Start binds the listen port and begins serving in a background
// goroutine. A bind failure is reported immediately; a port conflict is
// wrapped in ErrPortInUse so the CLI can print a specific diagnostic.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("%w: port %d", ErrPortInUse, s.cfg.Port)
		}
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      NewCORSMiddleware(s.requestLogMiddleware(s.handler)),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	s.log.Info("starting HTTP server", "port", s.Port(), "mode", s.dispatcher.Mode())
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	s.startTime = time.Now()
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	s.running = false
	s.log.Info("server stopped", "uptime", time.Since(s.startTime).Round(time.Second))
	return err
}

// Running reports whether the server has been started and not stopped.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Port returns the actual bound port. Useful when the configured port is
// 0 (pick any free port, used in tests).
func (s *Server) Port() int {
	if s.listener == nil {
		return s.cfg.Port
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return s.cfg.Port
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogMiddleware logs one line per request: method, path, status,
// duration.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}
