package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

// Options son los tiempos del http.Server.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run sirve h hasta que ctx se cancele y luego espera a que terminen los
// requests en vuelo, como máximo ShutdownTimeout.
func Run(ctx context.Context, opts Options, h http.Handler) error {
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}
	log := logger.L().With(logger.Component("server"))

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", logger.String("addr", opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	log.Info("shutting down", logger.Duration(timeout))
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}
