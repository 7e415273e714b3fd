package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// ShutdownHook releases a resource during graceful shutdown.
type ShutdownHook func(ctx context.Context) error

// Run serves on addr until ctx is done or SIGINT/SIGTERM arrives, then shuts
// the HTTP server down and runs hooks in order.
//
// Returns nil on clean shutdown, or an error if the server fails to start
// or a shutdown step fails.
func (s *Server) Run(ctx context.Context, addr string, timeout time.Duration, hooks ...ShutdownHook) error {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listen first to get the actual address.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	for _, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.log.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		s.log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	s.log.Info("shutdown completed")
	return nil
}
