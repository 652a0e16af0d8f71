package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/config"
)

// drainTimeout bounds Shutdown when its context has no deadline.
const drainTimeout = 10 * time.Second

// Server serves the router until Shutdown.
//
// Request contexts derive from a server-wide context. Once the Shutdown
// deadline passes that context is cancelled, so validations still waiting
// on lookups finish as cancelled instead of keeping the process alive.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
	abort  context.CancelFunc

	mu    sync.Mutex
	bound net.Addr
}

// NewServer returns a server for handler listening where cfg says. A nil
// logger discards.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	requests, abort := context.WithCancel(context.Background())
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			BaseContext:       func(net.Listener) context.Context { return requests },
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
		abort:  abort,
	}
}

// Start listens on the configured address and serves until Shutdown, which
// makes it return nil.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ln)
}

// Serve is Start on a listener the caller opened.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.bound = ln.Addr()
	s.mu.Unlock()

	s.logger.Info("serving HTTP", slog.String("addr", ln.Addr().String()))
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving HTTP: %w", err)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends, or drainTimeout when ctx has no deadline. Requests still
// running then have their contexts cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, drainTimeout)
		defer cancel()
	}
	defer s.abort()

	s.logger.Info("draining HTTP server")
	stop := context.AfterFunc(ctx, s.abort)
	defer stop()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("draining HTTP server: %w", err)
	}
	return nil
}

// Addr is the address being served, or the configured one before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != nil {
		return s.bound.String()
	}
	return s.srv.Addr
}
