package main

import (
	"fmt"
	"github.com/justinas/nosurf"
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/logging"
	"github.com/myrjola/veritruth/internal/random"
	"log/slog"
	"net/http"
)

const (
	cspNonceLength    = 24
	workspaceIDLength = 32
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := random.Letters(cspNonceLength)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		// Captured photos and uploads are previewed as data URIs.
		w.Header().Set("Content-Security-Policy",
			fmt.Sprintf(`script-src 'nonce-%s' 'strict-dynamic'; object-src 'none'; base-uri 'none'; `+
				`style-src 'self'; img-src 'self' data:; media-src 'self' blob:; frame-ancestors 'none';`, nonce))

		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")
		w.Header().Set("Permissions-Policy", "camera=(self), microphone=()")

		next.ServeHTTP(w, contexthelpers.SetCSPNonce(r, nonce))
	})
}

func cacheForeverHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		ctx := logging.WithAttrs(r.Context(), slog.String("method", method), slog.String("uri", uri))
		app.logger.LogAttrs(ctx, slog.LevelDebug, "received request", slog.String("proto", proto))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, errors.New("recovered from panic", slog.Any("panic", err)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// limitBody caps request bodies so that oversized uploads fail while parsing.
func (app *application) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, app.maxUploadBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf
func (app *application) noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{ //nolint:exhaustruct // defaults are fine
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
	})
	csrfHandler.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "CSRF validation failed",
			slog.String("reason", fmt.Sprint(nosurf.Reason(r))))
		app.clientError(w, r, http.StatusBadRequest)
	}))
	// apiAnalyze requires application/json instead.
	csrfHandler.ExemptPaths("/api/analyze")

	return csrfHandler
}

// loadWorkspace attaches the browser session's workspace to the request context.
func (app *application) loadWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := app.sessionManager.GetString(ctx, workspaceIDSessionKey)
		if id == "" {
			var err error
			if id, err = random.Letters(workspaceIDLength); err != nil {
				app.serverError(w, r, errors.Wrap(err, "generate workspace ID"))
				return
			}
			app.sessionManager.Put(ctx, workspaceIDSessionKey, id)
		}
		r = r.WithContext(logging.WithAttrs(ctx, slog.String("workspace_id", id)))
		next.ServeHTTP(w, contexthelpers.SetWorkspace(r, app.workspaces.Get(id)))
	})
}
