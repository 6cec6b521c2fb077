package main

import (
	"context"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func (app *application) configureAndStartServer(ctx context.Context, addr string) error {
	var err error
	shutdownComplete := make(chan struct{})
	idleTimeout := time.Minute
	shutdownTimeout := 5 * time.Second //nolint:mnd // 5 seconds
	srv := &http.Server{
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           app.routes(),
		IdleTimeout:       idleTimeout,
		ReadTimeout:       app.requestTimeout,
		WriteTimeout:      app.requestTimeout,
		ReadHeaderTimeout: time.Second,
	}
	go func() {
		sigint := make(chan os.Signal, 1)

		signal.Notify(sigint, os.Interrupt)
		signal.Notify(sigint, syscall.SIGTERM)
		defer signal.Stop(sigint)

		select {
		case <-sigint:
		case <-ctx.Done():
		}
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")

		// We received an interrupt signal or the context is done, shut down.
		shutdownContext, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownContext); shutdownErr != nil {
			shutdownErr = errors.Wrap(shutdownErr, "shutdown server")
			app.logger.LogAttrs(ctx, slog.LevelError, "error shutting down server", errors.SlogError(shutdownErr))
		}
		close(shutdownComplete)
	}()

	var listener net.Listener
	if listener, err = net.Listen("tcp", addr); err != nil {
		return errors.Wrap(err, "TCP listen")
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server", slog.String("addr", listener.Addr().String()))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server serve")
	}
	<-shutdownComplete

	return nil
}
