// Package server exposes the notification [Endpoint] over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/httpnotifier/notification"
	"github.com/saylorsolutions/httpnotifier/patterns/messaging"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	DefaultAddr            = ":5020"
	DefaultShutdownTimeout = 5 * time.Second
	SendPath               = "/send"
	LogPath                = "/log"
)

// Option configures a [Server].
type Option func(s *Server) error

// WithAddr sets the address the [Server] listens on with [Server.Run].
func WithAddr(addr string) Option {
	return func(s *Server) error {
		if len(addr) == 0 {
			return errors.New("empty listen address")
		}
		s.addr = addr
		return nil
	}
}

// WithLogger sets the logger used for requests and errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		s.logger = logger
		return nil
	}
}

// WithLog exposes the text of a [notification.Log] at [LogPath].
func WithLog(log *notification.Log) Option {
	return func(s *Server) error {
		if log == nil {
			return errors.New("nil notification log")
		}
		s.log = log
		return nil
	}
}

// WithShutdownTimeout sets how long in-flight requests are given to finish once the [Server] is stopping.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout <= 0 {
			return fmt.Errorf("invalid shutdown timeout '%s'", timeout)
		}
		s.shutdownTimeout = timeout
		return nil
	}
}

// Server serves the notification [Endpoint], and optionally the notification log.
type Server struct {
	bus             *messaging.Bus
	addr            string
	logger          *slog.Logger
	log             *notification.Log
	shutdownTimeout time.Duration
}

// New creates a [Server] that publishes received notifications to bus.
func New(bus *messaging.Bus, opts ...Option) (*Server, error) {
	if bus == nil {
		return nil, errors.New("nil bus")
	}
	s := &Server{
		bus:             bus,
		addr:            DefaultAddr,
		logger:          slog.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the [http.Handler] with all routes and middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	endpoint := NewEndpoint(s.bus, s.logger)
	mux.Handle("GET "+SendPath, endpoint)
	mux.Handle("POST "+SendPath, endpoint)
	if s.log != nil {
		mux.HandleFunc("GET "+LogPath, s.serveLog)
	}
	return wrap(mux,
		LoggingMiddleware(s.logger, slog.LevelInfo),
		RecoveryMiddleware(s.logger),
	)
}

func (s *Server) serveLog(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.log.String())
}

// Run listens on the configured address and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is the same as [Server.Run], but uses the given listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Notification endpoint listening", "addr", ln.Addr().String(), "path", SendPath)
	return listenCtx(ctx, func() error {
		return srv.Serve(ln)
	}, srv.Shutdown, s.shutdownTimeout)
}

func listenCtx(ctx context.Context, serveFn func() error, shutdownFn func(context.Context) error, shutdownTimeout time.Duration) error {
	srvErrs := make(chan error, 1)
	go func() {
		defer close(srvErrs)
		if err := serveFn(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErrs <- err
		}
	}()
	select {
	case err, more := <-srvErrs:
		if !more {
			return nil
		}
		return err
	case <-ctx.Done():
		timeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownFn(timeout); err != nil {
			return err
		}
		// Wait for the serve goroutine so nothing outlives Run.
		return <-srvErrs
	}
}
