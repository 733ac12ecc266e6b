package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/five82/flashdeck/internal/mockserver"
)

// ServeMock runs the local backend double on addr until ctx is cancelled.
// ready, when non-nil, receives the bound address once listening.
func ServeMock(ctx context.Context, addr string, opts mockserver.Options, logger *slog.Logger, ready chan<- string) error {
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = logger

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           mockserver.New(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	bound := ln.Addr().String()
	logger.Info("mock backend listening", "addr", bound, "delay", opts.Delay, "status", opts.Status)
	if ready != nil {
		ready <- bound
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown mock backend: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
