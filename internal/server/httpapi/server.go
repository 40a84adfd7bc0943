package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userauth/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second

	defaultShutdownTimeout = 10 * time.Second
)

// Server runs an http.Server until its context is cancelled.
type Server struct {
	address         string
	handler         http.Handler
	logger          logging.Logger
	shutdownTimeout time.Duration

	// ready receives the bound address once listening; used by tests with ":0".
	ready chan net.Addr
}

func NewServer(address string, l logging.Logger, h http.Handler, shutdownTimeout time.Duration) *Server {
	if l == nil {
		l = logging.NopLogger{}
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &Server{
		address:         address,
		handler:         h,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
		ready:           make(chan net.Addr, 1),
	}
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully and waits up to shutdownTimeout for in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
	s.ready <- listen.Addr()

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
