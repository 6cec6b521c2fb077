package pprofserver

import (
	"context"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"
)

// LogAddrKey is the key used to log the pprof listen address. It differs from the main server's key so that
// tests scraping the logs for the server address are not confused.
const LogAddrKey = "pprof_addr"

func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	Handle(mux)
	return mux
}

// Launch starts a pprof server on the loopback interface at port and stops it when ctx is done. An empty
// port disables the server.
func Launch(ctx context.Context, port string, logger *slog.Logger) {
	if port == "" {
		return
	}
	srv := &http.Server{
		Handler:           newServeMux(),
		ReadHeaderTimeout: time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	listener, err := net.Listen("tcp", net.JoinHostPort("localhost", port))
	if err != nil {
		err = errors.Wrap(err, "pprof listen", slog.String("port", port))
		logger.LogAttrs(ctx, slog.LevelError, "pprof server not started", errors.SlogError(err))
		return
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "starting pprof server", slog.String(LogAddrKey, listener.Addr().String()))
	go func() {
		if serveErr := srv.Serve(listener); !errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = errors.Wrap(serveErr, "pprof serve")
			logger.LogAttrs(ctx, slog.LevelError, "pprof server stopped", errors.SlogError(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
