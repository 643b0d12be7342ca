package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/dds/core/logger"
)

// Server serves one handler over plain HTTP and shuts down gracefully when
// its context ends. It is meant for side endpoints such as metrics scraping.
// Safe for concurrent use.
type Server struct {
	addr              string
	logger            *slog.Logger
	shutdownTimeout   time.Duration
	readHeaderTimeout time.Duration

	mu       sync.Mutex
	listener net.Listener
	srv      *http.Server
}

// New creates a server for addr. Use ":0" to bind a free port and read it
// back with Addr after Listen.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:              addr,
		logger:            logger.Discard(),
		shutdownTimeout:   DefaultShutdownTimeout,
		readHeaderTimeout: DefaultReadHeaderTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Listen binds the address without serving yet. Calling it before Run lets
// the caller learn the bound port. Run calls it when needed.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Join(ErrListen, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address once listening, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Run returns a function for errgroup that serves handler until ctx is
// canceled, then shuts down within the configured timeout. A canceled
// context is a clean exit and yields nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		if err := s.Listen(); err != nil {
			return err
		}

		s.mu.Lock()
		if s.srv != nil {
			s.mu.Unlock()
			return ErrServerAlreadyRunning
		}
		s.srv = &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: s.readHeaderTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}
		srv, ln := s.srv, s.listener
		s.mu.Unlock()

		errCh := make(chan error, 1)
		go func() {
			s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))
			errCh <- srv.Serve(ln)
		}()

		select {
		case err := <-errCh:
			s.reset()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		<-errCh
		// Serve may not have taken ownership of the listener yet.
		_ = ln.Close()
		s.reset()

		if err != nil {
			s.logger.Error("http server shutdown failed", logger.Error(err))
			return errors.Join(ErrShutdown, err)
		}
		s.logger.Info("http server stopped")
		return nil
	}
}

func (s *Server) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.srv = nil
	s.listener = nil
}
